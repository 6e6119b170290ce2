package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/jewelry/backend/internal/infrastructure/config"
)

// Drivers lists the databases that carry a migration set
var Drivers = []string{config.DriverPostgres, config.DriverMySQL, config.DriverSQLite}

const migrationUpTemplate = `-- Migration: {{.Name}}
-- Created: {{.Timestamp}}
-- Description: {{.Description}}
-- Driver: {{.Driver}}

`

const migrationDownTemplate = `-- Migration: {{.Name}} (Rollback)
-- Created: {{.Timestamp}}
-- Driver: {{.Driver}}

`

// MigrationFile is one up/down pair written for a single driver
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	Driver      string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair with the same version into the
// directory of every driver under rootDir
func CreateMigration(rootDir, name, description string) ([]*MigrationFile, error) {
	now := time.Now().UTC()
	version := now.Format("20060102150405")
	baseName := fmt.Sprintf("%s_%s", version, sanitizeName(name))

	files := make([]*MigrationFile, 0, len(Drivers))
	for _, driver := range Drivers {
		dir := filepath.Join(rootDir, driver)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return files, fmt.Errorf("failed to create migrations directory: %w", err)
		}

		mf := &MigrationFile{
			Version:     version,
			Name:        name,
			Description: description,
			Timestamp:   now.Format(time.RFC3339),
			Driver:      driver,
			UpPath:      filepath.Join(dir, baseName+".up.sql"),
			DownPath:    filepath.Join(dir, baseName+".down.sql"),
		}
		if err := createMigrationFile(mf.UpPath, migrationUpTemplate, mf); err != nil {
			return files, fmt.Errorf("failed to create up migration: %w", err)
		}
		if err := createMigrationFile(mf.DownPath, migrationDownTemplate, mf); err != nil {
			_ = os.Remove(mf.UpPath)
			return files, fmt.Errorf("failed to create down migration: %w", err)
		}
		files = append(files, mf)
	}
	return files, nil
}

func createMigrationFile(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// sanitizeName converts a migration name to a safe file name
func sanitizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			result = append(result, c)
		case c >= 'A' && c <= 'Z':
			result = append(result, c+'a'-'A')
		case c == ' ' || c == '-' || c == '_':
			if len(result) > 0 && result[len(result)-1] != '_' {
				result = append(result, '_')
			}
		}
	}
	return strings.TrimSuffix(string(result), "_")
}

// ListMigrations returns the sorted base names of the up migrations in fsys.
// A missing directory yields an empty list.
func ListMigrations(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && base != "" {
			names = append(names, base)
		}
	}
	slices.Sort(names)
	return names, nil
}

// CheckParity verifies that every driver directory in fsys holds the same
// migrations, so no database falls behind the others
func CheckParity(fsys fs.FS) error {
	var reference []string
	for i, driver := range Drivers {
		sub, err := fs.Sub(fsys, driver)
		if err != nil {
			return err
		}
		names, err := ListMigrations(sub)
		if err != nil {
			return err
		}
		if i == 0 {
			reference = names
			continue
		}
		if !slices.Equal(reference, names) {
			return fmt.Errorf("migrations for %s differ from %s: %v vs %v", driver, Drivers[0], names, reference)
		}
	}
	return nil
}
