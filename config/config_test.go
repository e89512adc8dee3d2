package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/tapas/config/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("fail to unmarshal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("bad type")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("")
		cu.EXPECT().Unmarshal(gomock.Any()).Times(1).Return(wantErr)
		_, err := New(cu)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Server: Server{
				Port:     9090,
				Username: "tapas",
				Password: "my-password",
			},
			Storage: Storage{
				FilePath: "/data/tapas.sqlite",
			},
			Library: Library{
				MediaDir: "/data/public",
			},
			Download: Download{
				Binary:     "./fetch",
				Args:       []string{"{url}", "{dest}", "--trace-ascii", "{trace}"},
				TraceDir:   "/tmp/tapas",
				StaleAfter: 10 * time.Minute,
			},
			Manager: Manager{
				Jobs: Jobs{DownloadReconcile: 30 * time.Second},
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		cu.SetDefault("server.port", 8080)
		cu.SetDefault("download.binary", "curl")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Server: Server{
				Port: 8080,
			},
			Download: Download{
				Binary: "curl",
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   Server{Port: 8080},
			Storage:  Storage{FilePath: "tapas.sqlite"},
			Library:  Library{MediaDir: "public"},
			Download: Download{Binary: "curl", Args: []string{"{url}"}, TraceDir: "/tmp"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("username without password", func(t *testing.T) {
		c := valid()
		c.Server.Username = "tapas"
		assert.Error(t, c.Validate())
	})

	t.Run("missing trace dir", func(t *testing.T) {
		c := valid()
		c.Download.TraceDir = ""
		assert.Error(t, c.Validate())
	})

	t.Run("no args", func(t *testing.T) {
		c := valid()
		c.Download.Args = nil
		assert.Error(t, c.Validate())
	})

	t.Run("negative stale timeout", func(t *testing.T) {
		c := valid()
		c.Download.StaleAfter = -time.Minute
		assert.Error(t, c.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		c := valid()
		c.Server.Port = 0
		assert.Error(t, c.Validate())
	})
}
