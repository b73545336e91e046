package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewGravaArquivoDentroDoDiretorio(t *testing.T) {
	// Diretório sem barra final: o arquivo deve nascer dentro dele,
	// nunca como "<dir>booki-api.log" ao lado.
	dir := t.TempDir()

	log, err := New(dir, false)
	if err != nil {
		t.Fatalf("erro ao criar logger: %v", err)
	}

	log.Info("inicializando")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "booki-api.log")); err != nil {
		t.Fatalf("arquivo de log não encontrado em %s: %v", dir, err)
	}
}

func TestNewCriaDiretorioDeLogs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	if _, err := New(dir, true); err != nil {
		t.Fatalf("erro ao criar logger: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("diretório de logs não criado: %v", err)
	}
}
