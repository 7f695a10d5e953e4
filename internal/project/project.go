package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/tabloom-cli/internal/report"
	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
	"github.com/google/uuid"
)

const (
	projectFileName = "project.json"
	tablesDirName   = "tables"
)

// Project groups saved tabulations on disk.
type Project struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Tables      map[string]*Tabulation `json:"tables"`
	Config      *ProjectConfig         `json:"config"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// ProjectConfig holds per-project tabulation defaults. Zero values inherit
// from the global configuration.
type ProjectConfig struct {
	Multiplier float64 `json:"multiplier,omitempty"`
	Digits     *int    `json:"digits,omitempty"`
}

// Apply overrides opt with the project defaults that are set.
func (c *ProjectConfig) Apply(opt *tabulate.Options) {
	if c == nil {
		return
	}
	if c.Multiplier != 0 {
		opt.Multiplier = c.Multiplier
	}
	if c.Digits != nil {
		opt.Digits = *c.Digits
	}
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	return &Project{
		Name:        name,
		Description: description,
		Tables:      make(map[string]*Tabulation),
		Config:      &ProjectConfig{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		rootDir:     rootDir,
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
	p.rootDir = dir
	return &p, nil
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

// AddTabulation stores res as a JSON file under the project's tables
// directory and records it. It returns the new tabulation.
func (p *Project) AddTabulation(res *tabulate.Result, source, description string, digits int) (*Tabulation, error) {
	if p.rootDir == "" {
		return nil, errors.New("project root directory not set")
	}
	dir := filepath.Join(p.rootDir, tablesDirName)
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("ensure tables dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name := utils.SafeName(base, "table") + "__" + utils.SafeName(res.Counter, "counter")
	if res.Grouper != "" {
		name += "-by-" + utils.SafeName(res.Grouper, "grouper")
	}
	path := utils.UniquePath(filepath.Join(dir, name+".json"))

	var buf bytes.Buffer
	if err := report.Render(&buf, res, report.JSON, report.Options{Name: filepath.Base(source), Digits: digits}); err != nil {
		return nil, err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write tabulation: %w", err)
	}

	tab := &Tabulation{
		ID:          uuid.NewString(),
		Source:      source,
		File:        filepath.Join(tablesDirName, filepath.Base(path)),
		Counter:     res.Counter,
		Grouper:     res.Grouper,
		Description: description,
		Rows:        len(res.DataRows()),
		Digits:      digits,
		AddedAt:     time.Now(),
	}
	if p.Tables == nil {
		p.Tables = make(map[string]*Tabulation)
	}
	p.Tables[tab.ID] = tab
	p.UpdatedAt = time.Now()
	return tab, nil
}

// Tabulation returns a saved tabulation by ID or unique ID prefix.
func (p *Project) Tabulation(id string) (*Tabulation, error) {
	if t, ok := p.Tables[id]; ok {
		return t, nil
	}
	var found *Tabulation
	for key, t := range p.Tables {
		if strings.HasPrefix(key, id) {
			if found != nil {
				return nil, fmt.Errorf("tabulation id %q is ambiguous", id)
			}
			found = t
		}
	}
	if found == nil {
		return nil, fmt.Errorf("tabulation %q not found in project '%s'", id, p.Name)
	}
	return found, nil
}

// LoadResult reads a saved tabulation back from disk.
func (p *Project) LoadResult(t *Tabulation) (*tabulate.Result, error) {
	b, err := os.ReadFile(filepath.Join(p.rootDir, t.File))
	if err != nil {
		return nil, fmt.Errorf("read tabulation: %w", err)
	}
	res, _, err := report.DecodeJSON(b)
	return res, err
}

// SortedTables lists tabulations oldest first, ties broken by ID.
func (p *Project) SortedTables() []*Tabulation {
	out := make([]*Tabulation, 0, len(p.Tables))
	for _, t := range p.Tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out
}
