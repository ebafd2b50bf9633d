package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeTLSFlagsMustBePaired(t *testing.T) {
	err := newApp().Run(context.Background(), []string{"docnav", "serve", "--tls-cert", "cert.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tls-cert and --tls-key")

	err = newApp().Run(context.Background(), []string{"docnav", "serve", "--tls-key", "key.pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tls-cert and --tls-key")
}

func TestServeTLSFlagsReachServer(t *testing.T) {
	dir := t.TempDir()
	err := newApp().Run(context.Background(), []string{
		"docnav", "serve",
		"--port", "0",
		"--read-timeout", "3s",
		"--max-header-bytes", "4096",
		"--tls-cert", filepath.Join(dir, "missing.crt"),
		"--tls-key", filepath.Join(dir, "missing.key"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}
