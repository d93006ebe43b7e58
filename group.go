package sections

// Group is a section whose clients option enumerates the sibling
// sections it owns. Traversal is lazy: construction always succeeds and
// each Clients call re-reads the list, so duplicates and order are
// preserved exactly as written.
type Group struct {
	*View
}

// ClientsOption is the conventional option naming a group's clients.
const ClientsOption = "clients"

// Clients resolves the clients list into one View per named section, in
// listed order with duplicates preserved. A name absent from the store
// fails with *UnknownSectionError at traversal time.
func (g *Group) Clients() ([]*View, error) {
	return g.ClientsFrom(ClientsOption)
}

// ClientsFrom traverses a differently named list option with the same
// semantics as Clients.
func (g *Group) ClientsFrom(option string) ([]*View, error) {
	names, err := g.List(option, nil)
	if err != nil {
		return nil, err
	}
	views := make([]*View, 0, len(names))
	for _, name := range names {
		if !g.store.HasSection(name) {
			return nil, &UnknownSectionError{Section: name}
		}
		views = append(views, g.store.Section(name))
	}
	return views, nil
}
