// Package codebase discovers and parses the Java sources of a project and
// keeps a symbol index over them up to date.
package codebase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/source"
)

var log = commonlog.GetLogger("saidoc.codebase")

// DefaultInclude matches every Java source below the root.
var DefaultInclude = []string{"**.java"}

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	include []compiledPattern
	exclude []compiledPattern
	files   map[string]*FileInfo
	index   *java.Index
}

type FileInfo struct {
	Path     string
	Content  []byte
	File     *source.File
	ParseErr error
}

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

type Option func(*options)

type options struct {
	include []string
	exclude []string
}

// WithInclude replaces DefaultInclude. Patterns are matched against the
// slash separated path relative to the root.
func WithInclude(patterns ...string) Option {
	return func(o *options) {
		o.include = patterns
	}
}

func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.exclude = patterns
	}
}

func New(rootDir string, opts ...Option) (*Codebase, error) {
	o := options{include: DefaultInclude}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		index:   java.NewIndex(),
	}
	var err error
	if c.include, err = compilePatterns(o.include); err != nil {
		return nil, err
	}
	if c.exclude, err = compilePatterns(o.exclude); err != nil {
		return nil, err
	}
	return c, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	var result []compiledPattern
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		result = append(result, compiledPattern{pattern: pattern, glob: g})
	}
	return result, nil
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Matches reports whether path, absolute or relative to the root, is a
// source file of this codebase.
func (c *Codebase) Matches(path string) bool {
	rel, err := filepath.Rel(c.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if matchesAny(rel, c.exclude) || matchesAny(rel+"/**", c.exclude) {
		return false
	}
	return matchesAny(rel, c.include)
}

func matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		// a root level file also matches patterns starting with **/
		if !strings.Contains(path, "/") && strings.HasPrefix(cp.pattern, "**/") {
			if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
				return true
			}
		}
	}
	return false
}

// Discover walks the root and returns the matching source files in
// lexical order. Hidden directories are skipped.
func (c *Codebase) Discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if c.Matches(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// ScanAll parses every discovered file with at most jobs files in flight
// and rebuilds the index once. Files that fail to read or parse are
// recorded; their errors are joined into the result while the remaining
// files are still indexed.
func (c *Codebase) ScanAll(ctx context.Context, jobs int) error {
	paths, err := c.Discover()
	if err != nil {
		return fmt.Errorf("discovering sources in %s: %w", c.rootDir, err)
	}

	infos := make([]*FileInfo, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				infos[i] = &FileInfo{Path: path, ParseErr: err}
				return nil
			}
			infos[i] = parse(path, content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for _, info := range infos {
		c.files[info.Path] = info
		if info.ParseErr != nil {
			log.Warningf("%s: %s", info.Path, info.ParseErr)
			errs = append(errs, info.ParseErr)
		}
	}
	c.rebuildIndexLocked()
	log.Infof("indexed %d classes from %d files", c.index.Len(), len(infos))
	return errors.Join(errs...)
}

func parse(path string, content []byte) *FileInfo {
	f, err := source.ParseFile(path, string(content))
	return &FileInfo{Path: path, Content: content, File: f, ParseErr: err}
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses one file from content and rebuilds the index. The
// parse error, if any, is returned after the file's surviving classes
// were indexed.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	info := parse(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	c.rebuildIndexLocked()
	return info.ParseErr
}

// rebuildIndexLocked replaces the index so that readers holding the old
// one keep a consistent view.
func (c *Codebase) rebuildIndexLocked() {
	var all []*java.ClassModel
	for _, path := range c.pathsLocked() {
		if f := c.files[path].File; f != nil {
			all = append(all, f.Classes...)
		}
	}
	java.ResolveInnerClassReferences(all)
	java.ResolveWildcardReferences(all)
	c.index = java.NewIndex(all...)
}

func (c *Codebase) pathsLocked() []string {
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildIndexLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pathsLocked()
}

// Index returns the current symbol index. The index is replaced, never
// mutated, when files change.
func (c *Codebase) Index() *java.Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index
}

func (c *Codebase) FindClass(name string) *java.ClassModel {
	cls, _ := c.Index().Class(name)
	return cls
}

// MemberKind tells what a Declaration points at.
type MemberKind int

const (
	MemberClass MemberKind = iota
	MemberField
	MemberMethod
	MemberEnumConstant
)

// Declaration is the declaration found on a source line.
type Declaration struct {
	Class *java.ClassModel
	Kind  MemberKind
	Name  string
	Line  int
}

// DeclarationAt returns the innermost declaration starting on line of
// path. Lines are 1-based.
func (c *Codebase) DeclarationAt(path string, line int) (Declaration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := c.files[path]
	if info == nil || info.File == nil {
		return Declaration{}, false
	}
	var found Declaration
	ok := false
	for _, cls := range info.File.Classes {
		if cls.EndLine > 0 && (line < cls.Line || line > cls.EndLine) {
			continue
		}
		if cls.Line == line {
			found, ok = Declaration{Class: cls, Kind: MemberClass, Name: cls.SimpleName, Line: line}, true
		}
		for _, f := range cls.Fields {
			if f.Line == line {
				found, ok = Declaration{Class: cls, Kind: MemberField, Name: f.Name, Line: line}, true
			}
		}
		for _, m := range cls.Methods {
			if m.Line == line {
				found, ok = Declaration{Class: cls, Kind: MemberMethod, Name: m.Name, Line: line}, true
			}
		}
		for _, ec := range cls.EnumConstants {
			if ec.Line == line {
				found, ok = Declaration{Class: cls, Kind: MemberEnumConstant, Name: ec.Name, Line: line}, true
			}
		}
	}
	return found, ok
}
