package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory holding dataset files
	Data string
	// Driver is the dataset driver (jsonfile or sqlite)
	Driver string
	// DSN points to the dataset file; derived from Data when empty
	DSN string
	// WebRoot is an optional directory with the static explorer UI build
	WebRoot string
	// Version is the current version of server
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsDemo reports whether the server runs on the built-in demo dataset.
func (p *Profile) IsDemo() bool {
	return p.Mode == "demo"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver != "jsonfile" && p.Driver != "sqlite" {
		p.Driver = "jsonfile"
	}

	// Demo mode runs on the embedded sample dataset and needs no data
	// directory unless one was supplied explicitly.
	if p.IsDemo() && p.Data == "" && p.DSN == "" {
		return nil
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "kg-explorer")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/kg-explorer"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.DSN == "" {
		switch p.Driver {
		case "sqlite":
			dbFile := fmt.Sprintf("kg_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		case "jsonfile":
			p.DSN = filepath.Join(dataDir, "dataset.json")
		}
	}

	return nil
}
