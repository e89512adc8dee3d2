package cmd

import (
	"testing"
	"time"

	"github.com/kasuboski/tapas/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	initConfig()

	cfg, err := config.New(viper.GetViper())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "curl", cfg.Download.Binary)
	assert.Equal(t, []string{"-sSL", "--trace-ascii", "{trace}", "-o", "{dest}", "{url}"}, cfg.Download.Args)
	assert.Equal(t, 30*time.Minute, cfg.Download.StaleAfter)
	assert.Equal(t, time.Minute, cfg.Manager.Jobs.DownloadReconcile)
	assert.Equal(t, 8080, cfg.Server.Port)
}
