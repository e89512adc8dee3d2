package manager

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_launcher.go github.com/kasuboski/tapas/pkg/manager Launcher
