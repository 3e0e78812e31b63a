package java

import (
	"sort"
	"strings"
	"sync"
)

type SymbolKind string

const (
	SymbolClass        SymbolKind = "class"
	SymbolField        SymbolKind = "field"
	SymbolMethod       SymbolKind = "method"
	SymbolConstructor  SymbolKind = "constructor"
	SymbolEnumConstant SymbolKind = "enum_constant"
)

// Symbol is the result of a successful name lookup. For members,
// QualifiedName is Declaring#Name.
type Symbol struct {
	Kind          SymbolKind `json:"kind"`
	Name          string     `json:"name"`
	QualifiedName string     `json:"qualifiedName"`
	Declaring     string     `json:"declaring,omitempty"`
}

func (s Symbol) IsMember() bool {
	return s.Kind != SymbolClass
}

// SymbolTable is the lookup capability consumed by link resolution and
// field aggregation. Implementations must be safe for concurrent reads.
type SymbolTable interface {
	Class(name string) (*ClassModel, bool)
	Resolve(scope *ClassModel, name string) (Symbol, bool)
	// ResolveMember finds a field, method or enum constant of scope or
	// one of its superclasses. Constructors are never returned.
	ResolveMember(scope *ClassModel, name string) (Symbol, bool)
}

const objectClass = "java.lang.Object"

// Index is an in-memory SymbolTable over parsed class models.
type Index struct {
	mu      sync.RWMutex
	classes map[string]*ClassModel
}

func NewIndex(classes ...*ClassModel) *Index {
	x := &Index{classes: make(map[string]*ClassModel)}
	x.Add(classes...)
	return x
}

// Add registers classes, replacing earlier models with the same name.
func (x *Index) Add(classes ...*ClassModel) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, c := range classes {
		if c == nil || c.Name == "" {
			continue
		}
		x.classes[c.Name] = c
	}
}

// Remove drops every class declared in the given source file.
func (x *Index) Remove(sourceFile string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for name, c := range x.classes {
		if c.SourceFile == sourceFile {
			delete(x.classes, name)
		}
	}
}

func (x *Index) Class(name string) (*ClassModel, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	c, ok := x.classes[name]
	return c, ok
}

// Classes returns all registered classes sorted by name.
func (x *Index) Classes() []*ClassModel {
	x.mu.RLock()
	defer x.mu.RUnlock()
	result := make([]*ClassModel, 0, len(x.classes))
	for _, c := range x.classes {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.classes)
}

// ResolveType finds the class a simple, partially qualified or fully
// qualified type name refers to from within scope. Lookup order: qualified
// name, inner classes of scope and its enclosing classes, single-type
// imports, same package, wildcard imports, java.lang.
func (x *Index) ResolveType(scope *ClassModel, name string) (*ClassModel, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.resolveType(scope, name)
}

func (x *Index) resolveType(scope *ClassModel, name string) (*ClassModel, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	if c, ok := x.classes[name]; ok {
		return c, true
	}
	if scope == nil {
		return nil, false
	}

	head, rest := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, rest = name[:i], name[i:]
	}

	for outer := scope; outer != nil; {
		if outer.SimpleName == head {
			if c, ok := x.classes[outer.Name+rest]; ok {
				return c, true
			}
		}
		if c, ok := x.classes[outer.Name+"."+name]; ok {
			return c, true
		}
		if outer.EnclosingClass == "" {
			break
		}
		outer = x.classes[outer.EnclosingClass]
	}

	for _, imp := range scope.Imports {
		if imp.IsWildcard || imp.IsStatic {
			continue
		}
		if SimpleNameOf(imp.QualifiedName) == head {
			if c, ok := x.classes[imp.QualifiedName+rest]; ok {
				return c, true
			}
		}
	}

	if scope.Package != "" {
		if c, ok := x.classes[scope.Package+"."+name]; ok {
			return c, true
		}
	}

	for _, imp := range scope.Imports {
		if !imp.IsWildcard || imp.IsStatic {
			continue
		}
		if c, ok := x.classes[imp.QualifiedName+"."+name]; ok {
			return c, true
		}
	}

	if c, ok := x.classes["java.lang."+name]; ok {
		return c, true
	}
	return nil, false
}

// Chain returns c followed by its superclasses, most derived first. The
// walk stops at the first superclass that is not indexed or that was
// already visited.
func (x *Index) Chain(c *ClassModel) []*ClassModel {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.chain(c)
}

func (x *Index) chain(c *ClassModel) []*ClassModel {
	var result []*ClassModel
	seen := make(map[string]bool)
	for c != nil && !seen[c.Name] {
		seen[c.Name] = true
		result = append(result, c)
		if c.SuperType == nil {
			// every class but Object itself implicitly extends Object
			if c.Name == objectClass || c.IsInterface() {
				break
			}
			c = x.classes[objectClass]
			continue
		}
		c = x.classes[c.SuperType.Name]
	}
	return result
}

// Resolve looks name up from scope. Accepted shapes are "Type",
// "pkg.Type", "#member", "Type#member" and either member form followed
// by a parenthesised signature, which is ignored. A bare name is tried as
// a member of scope first and as a type second. "Type#Type" names the
// constructor.
func (x *Index) Resolve(scope *ClassModel, name string) (Symbol, bool) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return Symbol{}, false
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if i := strings.IndexByte(name, '#'); i >= 0 {
		typeName, member := name[:i], name[i+1:]
		if member == "" {
			return Symbol{}, false
		}
		owner := scope
		if typeName != "" {
			var ok bool
			owner, ok = x.resolveType(scope, typeName)
			if !ok {
				return Symbol{}, false
			}
		}
		if owner != nil && member == owner.SimpleName && !owner.IsInterface() {
			return memberSymbol(SymbolConstructor, owner, member), true
		}
		return x.member(owner, member)
	}

	if !strings.Contains(name, ".") {
		if sym, ok := x.member(scope, name); ok {
			return sym, true
		}
	}
	if c, ok := x.resolveType(scope, name); ok {
		return Symbol{Kind: SymbolClass, Name: c.SimpleName, QualifiedName: c.Name, Declaring: c.EnclosingClass}, true
	}
	return Symbol{}, false
}

// ResolveMember looks name up among the members of scope and its
// superclasses.
func (x *Index) ResolveMember(scope *ClassModel, name string) (Symbol, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.member(scope, name)
}

func (x *Index) member(scope *ClassModel, name string) (Symbol, bool) {
	if scope == nil {
		return Symbol{}, false
	}
	for _, c := range x.chain(scope) {
		if _, ok := c.Field(name); ok {
			return memberSymbol(SymbolField, c, name), true
		}
		if len(c.MethodsNamed(name)) > 0 {
			return memberSymbol(SymbolMethod, c, name), true
		}
		if _, ok := c.EnumConstant(name); ok {
			return memberSymbol(SymbolEnumConstant, c, name), true
		}
	}
	return Symbol{}, false
}

func memberSymbol(kind SymbolKind, declaring *ClassModel, name string) Symbol {
	return Symbol{
		Kind:          kind,
		Name:          name,
		QualifiedName: declaring.Name + "#" + name,
		Declaring:     declaring.Name,
	}
}
