package sections

type visitKey struct {
	section string
	option  string
}

// Resolve expands every %(reference)s placeholder in raw within the
// scope of section, following the section-then-DEFAULTS fallback chain
// for each reference. References are themselves expanded before being
// used as lookup keys, so a placeholder may compute the name of the
// option it reads. %% yields a literal percent sign.
func (st *Store) Resolve(section, raw string) (string, error) {
	return st.expand(section, "", raw, make(map[visitKey]struct{}), nil)
}

// expand is the recursive scanner behind Resolve. visiting holds the
// (section, option) pairs on the active expansion stack; re-entering
// one is a cycle. rec, when non-nil, collects provenance for Traced.
func (st *Store) expand(section, option, value string, visiting map[visitKey]struct{}, rec *traceRecorder) (string, error) {
	var out []byte
	i := 0
	for i < len(value) {
		c := value[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 < len(value) && value[i+1] == '%' {
			out = append(out, '%')
			i += 2
			continue
		}
		if i+1 >= len(value) || value[i+1] != '(' {
			// Stray percent, kept literal. The original grammar only
			// reserves %( and %%.
			out = append(out, '%')
			i++
			continue
		}

		refStart := i + 2
		end, ok := matchPlaceholder(value, refStart)
		if !ok {
			return "", &InterpolationError{
				Section: section,
				Option:  option,
				Value:   value,
				Err:     ErrUnterminated,
			}
		}

		ref, err := st.expand(section, option, value[refStart:end], visiting, rec)
		if err != nil {
			return "", err
		}

		key := normalizeOption(ref)
		raw, source, found := st.lookup(section, key)
		if rec != nil {
			rec.record(Provenance{Reference: ref, Source: source, Raw: raw, Found: found})
		}
		if !found {
			return "", &InterpolationError{
				Section:   section,
				Option:    option,
				Value:     value,
				Reference: ref,
				Err:       ErrUnknownReference,
			}
		}

		vk := visitKey{section: section, option: key}
		if _, active := visiting[vk]; active {
			return "", &InterpolationError{
				Section:   section,
				Option:    option,
				Value:     value,
				Reference: ref,
				Err:       ErrCycle,
			}
		}
		visiting[vk] = struct{}{}
		resolved, err := st.expand(section, key, raw, visiting, rec)
		delete(visiting, vk)
		if err != nil {
			return "", err
		}

		out = append(out, resolved...)
		i = end + 2
	}
	return string(out), nil
}

// matchPlaceholder finds the )s closing the placeholder whose reference
// begins at start, honouring nested %(...)s spans and %% escapes. It
// returns the index of the closing ) and false when the placeholder
// never terminates.
func matchPlaceholder(value string, start int) (int, bool) {
	depth := 1
	for j := start; j < len(value); j++ {
		if value[j] == '%' && j+1 < len(value) {
			switch value[j+1] {
			case '%':
				j++
				continue
			case '(':
				depth++
				j++
				continue
			}
		}
		if value[j] == ')' && j+1 < len(value) && value[j+1] == 's' {
			depth--
			if depth == 0 {
				return j, true
			}
			j++
		}
	}
	return 0, false
}

// resolveOption looks up option in section and expands its raw value.
// The option itself is placed on the expansion stack so direct
// self-reference fails as a cycle.
func (st *Store) resolveOption(section, option string, rec *traceRecorder) (string, error) {
	key := normalizeOption(option)
	raw, source, ok := st.lookup(section, key)
	if rec != nil && ok {
		rec.record(Provenance{Reference: key, Source: source, Raw: raw, Found: true})
	}
	if !ok {
		if !st.HasSection(section) {
			return "", &UnknownSectionError{Section: section}
		}
		return "", &MissingOptionError{Section: section, Option: key}
	}
	visiting := map[visitKey]struct{}{{section: section, option: key}: {}}
	return st.expand(section, key, raw, visiting, rec)
}
