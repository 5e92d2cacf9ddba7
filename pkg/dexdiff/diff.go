package dexdiff

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/joshuapare/oatkit/pkg/dexdb"
	"github.com/joshuapare/oatkit/pkg/types"
)

// Catalog lists the classes of a DEX database.
type Catalog interface {
	Name() string
	Classes() ([]dexdb.Class, bool)
}

// Source is a Catalog that can also list the members of each class.
type Source interface {
	Catalog
	StaticFields(classID int64) ([]dexdb.Field, bool)
	InstanceFields(classID int64) ([]dexdb.Field, bool)
	Methods(classID int64) ([]dexdb.Method, bool)
}

// ClassReport is one class present in the local database but not in the
// baseline, with its members.
type ClassReport struct {
	Class          dexdb.Class    `json:"class"`
	StaticFields   []dexdb.Field  `json:"static_fields"`
	InstanceFields []dexdb.Field  `json:"instance_fields"`
	Methods        []dexdb.Method `json:"methods"`
}

// Diff returns the classes of local whose name does not appear in base, in
// local's class order. Names are compared exactly.
func Diff(local Source, base Catalog) ([]ClassReport, error) {
	baseClasses, ok := base.Classes()
	if !ok {
		return nil, fmt.Errorf("%w: classes of %s", types.ErrQueryFailed, base.Name())
	}
	known := lo.Associate(baseClasses, func(c dexdb.Class) (string, struct{}) {
		return c.Name, struct{}{}
	})

	localClasses, ok := local.Classes()
	if !ok {
		return nil, fmt.Errorf("%w: classes of %s", types.ErrQueryFailed, local.Name())
	}
	added := lo.Filter(localClasses, func(c dexdb.Class, _ int) bool {
		_, found := known[c.Name]
		return !found
	})

	reports := make([]ClassReport, 0, len(added))
	for _, c := range added {
		r := ClassReport{Class: c}
		if r.StaticFields, ok = local.StaticFields(c.ID); !ok {
			return nil, memberErr(local, "static fields", c)
		}
		if r.InstanceFields, ok = local.InstanceFields(c.ID); !ok {
			return nil, memberErr(local, "instance fields", c)
		}
		if r.Methods, ok = local.Methods(c.ID); !ok {
			return nil, memberErr(local, "methods", c)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func memberErr(src Catalog, what string, c dexdb.Class) error {
	return fmt.Errorf("%w: %s of %s in %s", types.ErrQueryFailed, what, c.Name, src.Name())
}
