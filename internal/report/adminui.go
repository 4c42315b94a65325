package report

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ehdc-llpg/linkage/internal/obslog"
)

// AdminUI is a tiny admin view listing past run directories under a
// configured output root, adapted from app/main.go — the
// teacher's second, gin-based HTTP surface, competing with
// internal/web's gorilla/mux stack rather than replacing it. Kept
// distinct from Server (the report API) since the previous system never
// unified the two: this package exercises both surviving stacks.
type AdminUI struct {
	root string
	log *obslog.Logger
	engine *gin.Engine
}

// RunSummary describes one run directory found under the output root.
type RunSummary struct {
	Name string `json:"name"`
	Path string `json:"path"`
	HasGroups bool `json:"has_groups"`
}

// NewAdminUI builds the admin view over root, the directory containing
// one subdirectory per past linkage run (each the -outdir a cmd/linkcsv
// link invocation wrote to).
func NewAdminUI(root string, log *obslog.Logger) *AdminUI {
	gin.SetMode(gin.ReleaseMode)
	a := &AdminUI{root: root, log: log, engine: gin.New()}
	a.engine.Use(gin.Recovery())
	a.engine.GET("/admin/runs", a.listRuns)
	a.engine.GET("/admin/runs/:name", a.runDetail)
	return a
}

func (a *AdminUI) listRuns(c *gin.Context) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var runs []RunSummary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(a.root, e.Name())
		_, err := os.Stat(filepath.Join(path, "groups.csv"))
		runs = append(runs, RunSummary{
				Name: e.Name(),
				Path: path,
				HasGroups: err == nil,
		})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name < runs[j].Name })
	c.JSON(http.StatusOK, runs)
}

func (a *AdminUI) runDetail(c *gin.Context) {
	name := c.Param("name")
	path := filepath.Join(a.root, name)
	entries, err := os.ReadDir(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "files": files})
}

// Run starts the admin HTTP server on addr, blocking, matching the
// teacher's app/main.go r.Run(":8080") call style.
func (a *AdminUI) Run(addr string) error {
	a.log.Infof("admin UI: listening on %s", addr)
	return a.engine.Run(addr)
}
