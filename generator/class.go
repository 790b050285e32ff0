package generator

import (
	"reflect"

	datacontract "github.com/aws/smithy-datacontract"
)

// fieldReader reads the struct field at index of the level value v.
type fieldReader func(v reflect.Value, index []int) reflect.Value

// classPlan is the member loop of a class contract, one level per
// inheritance depth from the root base down.
type classPlan struct {
	contract      *datacontract.Contract
	levels        []levelPlan
	extensionData bool
}

type levelPlan struct {
	contract *datacontract.Contract
	members  []memberPlan
}

type memberPlan struct {
	member *datacontract.Member
	read   func(level reflect.Value) reflect.Value
	elem   element
}

// buildClassPlan resolves the element names, namespaces, type markers and
// accessors of every member of c, indexed the same way as the contract's
// name tables.
func (g *Generator) buildClassPlan(c *datacontract.Contract, read fieldReader) *classPlan {
	plan := &classPlan{contract: c}

	names := c.MemberNames()
	namespaces := c.MemberNamespaces()
	children := c.ChildElementNamespaces()

	for _, level := range c.Hierarchy() {
		if level.HasExtensionData() {
			plan.extensionData = true
		}

		lp := levelPlan{contract: level, members: make([]memberPlan, 0, len(level.Members()))}
		for _, m := range level.Members() {
			i := m.Index()
			mp := memberPlan{
				member: m,
				elem:   g.newElement(names[i], namespaces[i], children[i], m.Type(), g.registry.HasConflictingType(m)),
			}
			if get := m.Getter(); get != nil {
				mp.read = get
			} else {
				index := m.FieldIndex()
				mp.read = func(level reflect.Value) reflect.Value { return read(level, index) }
			}
			lp.members = append(lp.members, mp)
		}
		plan.levels = append(plan.levels, lp)
	}

	return plan
}

// writeClass runs the member loop of plan over v. Base levels are read
// through their embedded fields with read.
func (g *Generator) writeClass(w datacontract.XMLWriter, sc *datacontract.Context, plan *classPlan, v reflect.Value, read fieldReader) error {
	c := plan.contract
	if err := sc.CheckReadOnly(c); err != nil {
		return err
	}

	if !v.CanAddr() {
		tmp := reflect.New(v.Type()).Elem()
		tmp.Set(v)
		v = tmp
	}

	if c.IsISerializable() {
		return g.writeISerializable(w, sc, c, v)
	}

	hierarchy := c.Hierarchy()
	levels := make([]reflect.Value, len(hierarchy))
	levels[len(levels)-1] = v
	for i := len(levels) - 2; i >= 0; i-- {
		levels[i] = read(levels[i+1], hierarchy[i+1].BaseIndex())
	}

	var ext *datacontract.ExtensionDataObject
	for i := range plan.levels {
		lp := &plan.levels[i]
		if fn := lp.contract.OnSerializing(); fn != nil {
			if err := fn(hookTarget(levels[i]), sc); err != nil {
				return err
			}
		}

		// the root level hook may still fill in extension data
		if i == 0 {
			if plan.extensionData {
				ext = sc.ExtensionData(v)
			}
			if err := g.writeExtensionData(w, sc, ext.At(-1)); err != nil {
				return err
			}
		}

		if err := sc.IncrementItemCount(len(lp.members)); err != nil {
			return err
		}
		for j := range lp.members {
			mp := &lp.members[j]
			if err := g.writeMember(w, sc, mp, levels[i]); err != nil {
				return err
			}
			if err := g.writeExtensionData(w, sc, ext.At(mp.member.Index())); err != nil {
				return err
			}
		}
	}

	for i := range plan.levels {
		if fn := plan.levels[i].contract.OnSerialized(); fn != nil {
			if err := fn(hookTarget(levels[i]), sc); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Generator) writeMember(w datacontract.XMLWriter, sc *datacontract.Context, mp *memberPlan, level reflect.Value) error {
	m := mp.member
	v := mp.read(level)

	if !m.EmitDefaultValue() && isDefault(v) {
		if m.IsRequired() {
			return &datacontract.RequiredMemberError{Contract: m.Owner().String(), Member: m.Name()}
		}
		return nil
	}

	if m.IsGetOnlyCollection() {
		sc.StoreIsGetOnlyCollection()
		defer sc.ResetIsGetOnlyCollection()
	}
	return g.writeElement(w, sc, &mp.elem, v)
}

func isDefault(v reflect.Value) bool {
	return !v.IsValid() || v.IsZero()
}

// hookTarget returns the value passed to serialization callbacks, a pointer
// to the level value.
func hookTarget(v reflect.Value) any {
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	return v.Interface()
}
