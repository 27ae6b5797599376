package flow

// PortBlueprint describes one port a freshly placed node (i.e. not
// loaded from a record) should be given, mirroring the class-level
// init_inputs/init_outputs lists a node type declares.
type PortBlueprint struct {
	Label   string
	Kind    PortKind
	DType   string
	AddData map[string]any
}

// NodeClass is the registration-time description of a node type: its
// stable identifier, its default port layout, and the factory that
// builds a fresh Behavior for each instance. It plays the role the
// original node-editor framework gives to a Node subclass's class-level
// attributes, translated into a value Go can register at runtime
// instead of a type the language itself makes introspectable.
type NodeClass struct {
	// Prefix, when set, namespaces this class's composed identifier:
	// Register/RegisterInvisible prepend "Prefix + \".\"" to it, per
	// §3's composition rule.
	Prefix string
	// Identifier is the explicit identifier segment for this class
	// (explicit_id in §3's rule), or empty to fall back to Title as the
	// class-name segment. Register/RegisterInvisible overwrite this
	// field in place with the fully composed value
	// ((prefix + ".")? + (explicit_id or class_name)) the first time
	// the class is registered; that composed value is what Lookup
	// matches and Data persists.
	Identifier string
	// LegacyIdentifiers lists additional strings a project file may use
	// to name this class; Registry.Lookup accepts any of them but Data
	// always writes Identifier.
	LegacyIdentifiers []string
	Title             string
	Version           string

	InitInputs  []PortBlueprint
	InitOutputs []PortBlueprint

	// BlockInitUpdates, when true, suppresses update_event calls for
	// the duration a node of this class is being constructed and wired
	// up during Flow.Load, so that restoring a persisted graph does not
	// re-trigger side effects a live edit would have caused.
	BlockInitUpdates bool

	// New constructs a fresh Behavior for one node instance. Called
	// once per Node.
	New func() Behavior

	composed bool
}

// composeIdentifier applies §3's composition rule exactly once:
// identifier := (prefix + ".")? + (explicit_id or class_name). It is
// idempotent so registering the same class with two registries (a
// Visible one and an Invisible one, say) never double-prefixes it.
func (c *NodeClass) composeIdentifier() {
	if c.composed {
		return
	}
	base := c.Identifier
	if base == "" {
		base = c.Title
	}
	if c.Prefix != "" {
		base = c.Prefix + "." + base
	}
	c.Identifier = base
	c.composed = true
}

// Registry resolves a project file's node identifiers back to the
// NodeClass that can construct them. Visible and Invisible mirror a
// host UI's distinction between node types a palette should list and
// ones it should not (e.g. deprecated aliases kept only for loading old
// files); Lookup searches both.
type Registry struct {
	Visible   []*NodeClass
	Invisible []*NodeClass
}

// Register composes class's identifier (§3) and adds it to the
// registry's visible list.
func (r *Registry) Register(class *NodeClass) {
	class.composeIdentifier()
	r.Visible = append(r.Visible, class)
}

// RegisterInvisible composes class's identifier (§3) and adds it to the
// registry's invisible list: still resolvable by Lookup (so old project
// files still load) but never meant to be offered to a user building a
// new flow.
func (r *Registry) RegisterInvisible(class *NodeClass) {
	class.composeIdentifier()
	r.Invisible = append(r.Invisible, class)
}

// Lookup resolves identifier to a registered class, checking the
// canonical Identifier and every LegacyIdentifiers entry.
func (r *Registry) Lookup(identifier string) (*NodeClass, bool) {
	for _, list := range [][]*NodeClass{r.Visible, r.Invisible} {
		for _, c := range list {
			if c.Identifier == identifier {
				return c, true
			}
			for _, alias := range c.LegacyIdentifiers {
				if alias == identifier {
					return c, true
				}
			}
		}
	}
	return nil, false
}
