package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"land-valuation/internal/api/models"
	"land-valuation/internal/config"
	"land-valuation/internal/model"

	"github.com/gin-gonic/gin"
)

var errProjectNotFound = errors.New("project not found")

// ProjectHandler serves the YAML project presets in a directory.
type ProjectHandler struct {
	projectDir string
}

// NewProjectHandler creates a project handler over dir (see config.Env.ProjectDir).
func NewProjectHandler(dir string) *ProjectHandler {
	// Convert to absolute path for reliability
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	slog.Info("project presets", "dir", dir)
	return &ProjectHandler{projectDir: dir}
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects := []models.ProjectInfo{}

	entries, err := os.ReadDir(h.projectDir)
	if err != nil {
		slog.Warn("failed to read project directory", "dir", h.projectDir, "error", err)
		c.JSON(http.StatusOK, gin.H{"projects": projects})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		a, err := h.Load(id)
		if err != nil {
			slog.Warn("skipping project preset", "file", entry.Name(), "error", err)
			continue
		}
		name := a.Name
		if name == "" {
			name = id
		}
		projects = append(projects, models.ProjectInfo{
			ID:          id,
			Name:        name,
			File:        filepath.Join(h.projectDir, entry.Name()),
			Assumptions: assumptionsMap(a),
		})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Load reads and validates the preset with the given id (file name without .yaml).
func (h *ProjectHandler) Load(id string) (model.ProjectAssumptions, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return model.ProjectAssumptions{}, fmt.Errorf("%w: %q", errProjectNotFound, id)
	}
	path := filepath.Join(h.projectDir, id+".yaml")
	if _, err := os.Stat(path); err != nil {
		return model.ProjectAssumptions{}, fmt.Errorf("%w: %q", errProjectNotFound, id)
	}
	pc, err := config.LoadProjectFile(path)
	if err != nil {
		return model.ProjectAssumptions{}, err
	}
	a, err := pc.ToModel()
	if err != nil {
		return model.ProjectAssumptions{}, err
	}
	if a.Name == "" {
		a.Name = id
	}
	return a, a.Validate()
}

// resolve builds the assumptions for a request: preset or defaults, then overrides.
func (h *ProjectHandler) resolve(in models.ProjectInput) (model.ProjectAssumptions, error) {
	base := model.DefaultAssumptions()
	if in.ProjectID != "" {
		var err error
		if base, err = h.Load(in.ProjectID); err != nil {
			return model.ProjectAssumptions{}, err
		}
	}
	a, err := base.WithOverrides(in.Assumptions)
	if err != nil {
		return model.ProjectAssumptions{}, err
	}
	if in.Name != "" {
		a.Name = in.Name
	}
	return a, a.Validate()
}
