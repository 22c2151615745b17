package cbd

// ResolveFlavorID maps a flavor name or id to the provider's flavor id.
// Matching is exact on either field, scanning in provider order; the first
// match wins. Passing an id that is already valid returns it unchanged.
func ResolveFlavorID(flavors []Flavor, flavor string) (string, error) {
	for _, f := range flavors {
		if f.Name == flavor || f.ID == flavor {
			return f.ID, nil
		}
	}
	return "", &EntityNotFoundError{Entity: "flavor", Name: flavor}
}
