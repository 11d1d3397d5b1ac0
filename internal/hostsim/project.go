package hostsim

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Asset is one entry in the simulated asset database.
type Asset struct {
	Path         string         `json:"path"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Extension    string         `json:"extension"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Prefab is a saved object template plus bookkeeping about its scene
// instances.
type Prefab struct {
	Path       string
	SourceName string
	Components []string
	Variants   []string
}

// Project bundles everything outside the open scene: scripts, assets
// and prefabs.
type Project struct {
	scripts map[string]string
	assets  map[string]*Asset
	prefabs map[string]*Prefab
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{
		scripts: make(map[string]string),
		assets:  make(map[string]*Asset),
		prefabs: make(map[string]*Prefab),
	}
}

// ReadScript returns the stored content of a script file.
func (p *Project) ReadScript(scriptPath string) (string, error) {
	content, ok := p.scripts[scriptPath]
	if !ok {
		return "", fmt.Errorf("script not found: %s", scriptPath)
	}
	return content, nil
}

// WriteScript creates or updates a script file. Without overwrite an
// existing path is an error.
func (p *Project) WriteScript(scriptPath, content string, overwrite bool) (created bool, err error) {
	_, exists := p.scripts[scriptPath]
	if exists && !overwrite {
		return false, fmt.Errorf("script already exists: %s", scriptPath)
	}
	p.scripts[scriptPath] = content
	if !exists {
		p.AddAsset(&Asset{
			Path:      scriptPath,
			Name:      strings.TrimSuffix(path.Base(scriptPath), path.Ext(scriptPath)),
			Type:      "MonoScript",
			Extension: path.Ext(scriptPath),
		})
	}
	return !exists, nil
}

// AddAsset inserts or replaces a database entry.
func (p *Project) AddAsset(a *Asset) {
	p.assets[a.Path] = a
}

// Asset returns the database entry for an asset path.
func (p *Project) Asset(assetPath string) (*Asset, error) {
	a, ok := p.assets[assetPath]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", assetPath)
	}
	return a, nil
}

// AssetQuery filters the asset database. Zero values match everything.
type AssetQuery struct {
	Path       string
	Type       string
	Name       string // supports * and ? wildcards
	Extension  string
	Recursive  bool
	MaxResults int
}

// FindAssets returns database entries matching the query, ordered by
// path.
func (p *Project) FindAssets(q AssetQuery) []*Asset {
	root := q.Path
	if root == "" {
		root = "Assets"
	}

	var out []*Asset
	for _, a := range p.assets {
		if !strings.HasPrefix(a.Path, root) {
			continue
		}
		if !q.Recursive {
			rest := strings.TrimPrefix(strings.TrimPrefix(a.Path, root), "/")
			if strings.Contains(rest, "/") {
				continue
			}
		}
		if q.Type != "" && a.Type != q.Type {
			continue
		}
		if q.Extension != "" && a.Extension != q.Extension {
			continue
		}
		if q.Name != "" {
			matched, err := path.Match(strings.ToLower(q.Name), strings.ToLower(a.Name))
			if err != nil || !matched {
				continue
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	if q.MaxResults > 0 && len(out) > q.MaxResults {
		out = out[:q.MaxResults]
	}
	return out
}

// Dependencies returns an asset's dependency paths, transitively when
// recursive is set.
func (p *Project) Dependencies(assetPath string, recursive bool) ([]string, error) {
	a, err := p.Asset(assetPath)
	if err != nil {
		return nil, err
	}
	if !recursive {
		return append([]string(nil), a.Dependencies...), nil
	}

	seen := map[string]bool{assetPath: true}
	var out []string
	var walk func(paths []string)
	walk = func(paths []string) {
		for _, dep := range paths {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			if next, ok := p.assets[dep]; ok {
				walk(next.Dependencies)
			}
		}
	}
	walk(a.Dependencies)
	sort.Strings(out)
	return out, nil
}

// Structure renders the directory tree under rootPath from the asset
// database, with per-directory file counts.
func (p *Project) Structure(rootPath string, maxDepth int, includeFiles bool) map[string]any {
	type dirInfo struct {
		files []string
		dirs  map[string]bool
	}
	dirs := map[string]*dirInfo{rootPath: {dirs: map[string]bool{}}}

	ensure := func(dir string) *dirInfo {
		if d, ok := dirs[dir]; ok {
			return d
		}
		d := &dirInfo{dirs: map[string]bool{}}
		dirs[dir] = d
		return d
	}

	fileCount := 0
	for _, a := range p.assets {
		if !strings.HasPrefix(a.Path, rootPath) {
			continue
		}
		fileCount++
		dir := path.Dir(a.Path)
		ensure(dir).files = append(ensure(dir).files, path.Base(a.Path))
		// Register each ancestor directory up to the root.
		for dir != rootPath && strings.HasPrefix(dir, rootPath) {
			parent := path.Dir(dir)
			ensure(parent).dirs[dir] = true
			dir = parent
		}
	}

	var render func(dir string, depth int) map[string]any
	render = func(dir string, depth int) map[string]any {
		info := ensure(dir)
		node := map[string]any{
			"path":      dir,
			"fileCount": len(info.files),
		}
		if includeFiles && len(info.files) > 0 {
			sort.Strings(info.files)
			node["files"] = info.files
		}
		if maxDepth > 0 && depth >= maxDepth {
			return node
		}
		var children []map[string]any
		subdirs := make([]string, 0, len(info.dirs))
		for d := range info.dirs {
			subdirs = append(subdirs, d)
		}
		sort.Strings(subdirs)
		for _, d := range subdirs {
			children = append(children, render(d, depth+1))
		}
		if children != nil {
			node["directories"] = children
		}
		return node
	}

	tree := render(rootPath, 0)
	tree["totalFiles"] = fileCount
	return tree
}

// Prefab returns the prefab stored at the given path.
func (p *Project) Prefab(prefabPath string) (*Prefab, error) {
	pf, ok := p.prefabs[prefabPath]
	if !ok {
		return nil, fmt.Errorf("prefab not found: %s", prefabPath)
	}
	return pf, nil
}

// SavePrefab stores a prefab and registers its asset entry.
func (p *Project) SavePrefab(pf *Prefab, overwrite bool) error {
	if _, exists := p.prefabs[pf.Path]; exists && !overwrite {
		return fmt.Errorf("prefab already exists: %s", pf.Path)
	}
	p.prefabs[pf.Path] = pf
	p.AddAsset(&Asset{
		Path:      pf.Path,
		Name:      strings.TrimSuffix(path.Base(pf.Path), ".prefab"),
		Type:      "GameObject",
		Extension: ".prefab",
	})
	return nil
}
