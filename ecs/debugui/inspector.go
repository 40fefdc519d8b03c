package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
)

// EntityRow summarises one live entity for the inspector list.
type EntityRow struct {
	ID        ecs.EntityId
	Archetype string
}

// EntityRows lists every live entity grouped by archetype in creation order.
func EntityRows(storage *ecs.Storage) []EntityRow {
	rows := make([]EntityRow, 0, storage.EntityCount())
	for arch := range storage.Archetypes() {
		label := arch.String()
		for id := range arch.Iter() {
			rows = append(rows, EntityRow{ID: id, Archetype: label})
		}
	}
	return rows
}

// WorldInspector lists entities and singletons and edits their fields in place.
type WorldInspector struct {
	selected ecs.EntityId
	chosen   bool
}

func NewWorldInspector() *WorldInspector {
	return &WorldInspector{}
}

// Select makes id the inspected entity.
func (w *WorldInspector) Select(id ecs.EntityId) {
	w.selected = id
	w.chosen = true
}

// Selected returns the inspected entity, if one is selected and still alive.
func (w *WorldInspector) Selected(storage *ecs.Storage) (ecs.EntityId, bool) {
	if !w.chosen || !storage.Alive(w.selected) {
		return 0, false
	}
	return w.selected, true
}

func (w *WorldInspector) Render(storage *ecs.Storage) {
	if !imgui.BeginV("World", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.TreeNodeStr("Entities") {
		current, ok := w.Selected(storage)
		for _, row := range EntityRows(storage) {
			label := fmt.Sprintf("%s %s", row.ID, row.Archetype)
			if imgui.SelectableBoolV(label, ok && row.ID == current, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				w.Select(row.ID)
			}
		}
		imgui.TreePop()
	}

	if id, ok := w.Selected(storage); ok {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Entity %s", id))
		arch := archetypeOf(storage, id)
		for _, t := range arch.Types() {
			if comp := storage.GetComponent(id, t); comp != nil {
				editValue(t.Name(), reflect.ValueOf(comp).Elem(), t.String())
			}
		}
	}

	if imgui.TreeNodeStr("Singletons") {
		for t, value := range storage.Singletons() {
			editValue(t.Name(), reflect.ValueOf(value).Elem(), t.String())
		}
		imgui.TreePop()
	}

	imgui.End()
}

func archetypeOf(storage *ecs.Storage, id ecs.EntityId) *ecs.Archetype {
	for arch := range storage.Archetypes() {
		if arch.ID() == id.ArchetypeId() {
			return arch
		}
	}
	return nil
}

// editValue draws an input for v, which must be addressable. scope keeps
// ImGui widget IDs unique across components with identically named fields.
func editValue(name string, v reflect.Value, scope string) {
	id := fmt.Sprintf("##%s.%s", scope, name)

	switch v.Kind() {
	case reflect.Struct:
		if imgui.TreeNodeStr(name + id) {
			t := v.Type()
			for i := 0; i < v.NumField(); i++ {
				if !t.Field(i).IsExported() {
					continue
				}
				editValue(t.Field(i).Name, v.Field(i), scope+"."+name)
			}
			imgui.TreePop()
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		label(name)
		if imgui.InputFloat(id, &f) {
			v.SetFloat(float64(f))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		label(name)
		if imgui.InputInt(id, &n) && !v.OverflowInt(int64(n)) {
			v.SetInt(int64(n))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name+id, &b) {
			v.SetBool(b)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}

func label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
