package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/project"
	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/sirupsen/logrus"
)

// loadDataset picks the CSV or XLSX loader by extension.
func loadDataset(path, sheet string, p record.Profile) (*record.Dataset, error) {
	var (
		ds  *record.Dataset
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		ds, err = record.LoadXLSX(path, sheet, p)
	} else {
		ds, err = record.LoadFile(path, p)
	}
	if err != nil {
		return nil, err
	}
	fields := logrus.Fields{
		"path":    path,
		"profile": p.Name,
		"rows":    ds.Len(),
		"skipped": ds.Skipped,
	}
	for _, col := range p.Columns() {
		if _, absent, null := ds.Counts(col); absent+null > 0 {
			fields["missing."+col] = absent + null
		}
	}
	log.WithFields(fields).Debug("dataset loaded")
	return ds, nil
}

// recordChart adds a rendered image to the manifest in the images directory.
func recordChart(dir, name, path, profile string, sources []project.Source) error {
	p, err := project.Open(dir)
	if err != nil {
		return err
	}
	c := p.Record(name, path, profile, sources)
	if err := p.Save(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"chart": name, "id": c.ID}).Debug("manifest updated")
	return nil
}

// writeChart creates path and renders into it, removing the file if rendering fails.
func writeChart(path string, render func(io.Writer) error) error {
	f, err := utils.CreateFile(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
