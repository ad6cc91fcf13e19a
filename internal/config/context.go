// Package config wires the application together: settings, lookup
// tables, the metadata session and the renaming orchestrator in one
// context handed to every command.
package config

import (
	"path/filepath"

	"github.com/stedavkle/fish-renamer/internal/conf"
	"github.com/stedavkle/fish-renamer/internal/exiftool"
	"github.com/stedavkle/fish-renamer/internal/filename"
	"github.com/stedavkle/fish-renamer/internal/lookup"
	"github.com/stedavkle/fish-renamer/internal/renamer"
)

// Context holds the overall application state shared by all commands.
type Context struct {
	Settings  *conf.Settings
	Tables    *lookup.Tables
	Session   *exiftool.Session
	Assembler *filename.Assembler
	Renamer   *renamer.Orchestrator
}

// NewContext builds the full collaborator graph from loaded settings.
func NewContext(settings *conf.Settings) (*Context, error) {
	species, photographers, divesites, activities, labels := settings.TablePaths()
	tables, err := lookup.Load(lookup.Paths{
		Species:       species,
		Photographers: photographers,
		Divesites:     divesites,
		Activities:    activities,
		Labels:        labels,
	})
	if err != nil {
		return nil, err
	}
	tables.FilterByLocation(settings.Defaults.Location)

	session := exiftool.New(exiftool.Config{
		Path:      settings.ExifTool.Path,
		BatchSize: settings.ExifTool.BatchSize,
	})

	assembler := filename.NewAssembler(tables)

	return &Context{
		Settings:  settings,
		Tables:    tables,
		Session:   session,
		Assembler: assembler,
		Renamer:   renamer.New(assembler, tables, session),
	}, nil
}

// UndoLogPath is where completed batches are persisted for undo.
func UndoLogPath() (string, error) {
	paths, err := conf.GetDefaultConfigPaths()
	if err != nil {
		return "", err
	}
	return filepath.Join(paths[0], "undo.yaml"), nil
}

// SaveUndoLog persists the orchestrator's latest batch so a later
// process can reverse it.
func (c *Context) SaveUndoLog() error {
	path, err := UndoLogPath()
	if err != nil {
		return err
	}
	return c.Renamer.UndoLog().Save(path)
}

// Close releases the external process.
func (c *Context) Close() {
	if c.Session != nil {
		c.Session.Shutdown()
	}
}
