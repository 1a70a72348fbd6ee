package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/utils"
	"github.com/google/uuid"
)

const (
	projectFileName = "project.json"
)

// Project is the chart output directory and the manifest persisted in it.
type Project struct {
	ID        string            `json:"id"`
	Charts    map[string]*Chart `json:"charts"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(rootDir string) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Charts:    make(map[string]*Chart),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, projectFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Charts == nil {
		p.Charts = make(map[string]*Chart)
	}
	p.rootDir = dir
	return &p, nil
}

// Open loads the project in dir, or starts a new one if none exists yet.
func Open(dir string) (*Project, error) {
	p, err := LoadProject(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewProject(dir), nil
	}
	return p, err
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, projectFileName), data)
}

// Record adds or replaces the chart with the same name. A replaced chart keeps its ID.
func (p *Project) Record(name, path, profile string, sources []Source) *Chart {
	if p.Charts == nil {
		p.Charts = make(map[string]*Chart)
	}
	c, ok := p.Charts[name]
	if !ok {
		c = &Chart{ID: uuid.NewString(), Name: name}
		p.Charts[name] = c
	}
	c.Path = path
	c.Profile = profile
	c.Sources = sources
	c.GeneratedAt = time.Now()
	p.UpdatedAt = c.GeneratedAt
	return c
}

// List returns charts sorted by name.
func (p *Project) List() []*Chart {
	names := make([]string, 0, len(p.Charts))
	for n := range p.Charts {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Chart, 0, len(names))
	for _, n := range names {
		out = append(out, p.Charts[n])
	}
	return out
}
