package aggregator

import (
	"fmt"

	"github.com/diwise/catalog-aggregator/pkg/catalog/errors"
	"github.com/diwise/catalog-aggregator/pkg/catalog/types"
)

// Index maps the url of an entity to the entity itself
type Index map[string]types.Entity

func IndexByURL(people types.Collection) Index {
	idx := make(Index, len(people))
	for _, p := range people {
		idx[p.URL()] = p
	}
	return idx
}

// ResolveResidents returns new planets where the resident urls have been replaced
// by the names of the residents. The planets in the supplied collection are left
// untouched. A resident that is missing from the index fails the resolution.
func ResolveResidents(planets types.Collection, idx Index) (types.Collection, error) {
	joined := make(types.Collection, 0, len(planets))

	for _, planet := range planets {
		names, err := residentNames(planet, idx)
		if err != nil {
			return nil, err
		}

		joined = append(joined, planet.With(types.FieldResidents, names))
	}

	return joined, nil
}

func residentNames(planet types.Entity, idx Index) ([]string, error) {
	value, _ := planet.Field(types.FieldResidents)
	if value == nil {
		return []string{}, nil
	}

	var residents []any

	switch v := value.(type) {
	case []any:
		residents = v
	case []string:
		for _, s := range v {
			residents = append(residents, s)
		}
	default:
		return nil, errors.NewResolutionError(
			fmt.Sprintf("residents of planet %s is not a list", planet.URL()),
		)
	}

	names := make([]string, 0, len(residents))

	for _, r := range residents {
		residentURL, ok := r.(string)
		if !ok {
			return nil, errors.NewResolutionError(
				fmt.Sprintf("planet %s has a resident reference that is not a url", planet.URL()),
			)
		}

		person, found := idx[residentURL]
		if !found {
			return nil, errors.NewResolutionError(
				fmt.Sprintf("resident %s of planet %s not found among people", residentURL, planet.URL()),
			)
		}

		names = append(names, person.Name())
	}

	return names, nil
}
