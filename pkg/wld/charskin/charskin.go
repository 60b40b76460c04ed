// Package charskin groups an actor's alternate material palettes and
// alternate meshes (palette-swapped skins) for the "list-characters" CLI
// operation.
package charskin

import (
	"regexp"
	"sort"

	"github.com/pixelbound/equilibre/pkg/wld"
	"github.com/pixelbound/equilibre/pkg/wld/fragments"
)

// materialNameExp splits a material definition name such as "ORCCH0201_MDF"
// into actor ("ORC"), piece ("CH"+"01" == "CH01") and palette ("02").
var materialNameExp = regexp.MustCompile(`^(\w{3})(\w{2})(\w{2})(\w{2})_MDF$`)

// meshNameExp splits a mesh definition name such as "ELEHE00_DMSPRITEDEF"
// into actor ("ELE"), piece ("HE") and palette ("00").
var meshNameExp = regexp.MustCompile(`^(\w{3})(.*)(\d{2})_DMSPRITEDEF$`)

// explodeMaterialName returns actor, piece, palette or ok=false if name
// doesn't match the material naming convention.
func explodeMaterialName(name string) (actor, piece, palette string, ok bool) {
	m := materialNameExp.FindStringSubmatch(name)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2] + m[4], m[3], true
}

func combineMaterialName(actor, palette, piece string) string {
	if len(piece) < 4 {
		return ""
	}
	return actor + piece[0:2] + palette + piece[2:4] + "_MDF"
}

func explodeMeshName(name string) (actor, piece, palette string, ok bool) {
	m := meshNameExp.FindStringSubmatch(name)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// Skin is one palette variant of an actor (the base skin, or an alternate
// discovered from a standalone 0x30 Material fragment or 0x36 Mesh fragment).
type Skin struct {
	Palette   string
	Materials map[string]*fragments.Material
}

func newSkin(palette string) *Skin {
	return &Skin{Palette: palette, Materials: make(map[string]*fragments.Material)}
}

// Actor collects all known skins for one character model.
type Actor struct {
	Name  string
	Skins map[string]*Skin
	// baseMesh is the first model's mesh, used to enumerate material slots.
	baseMesh *fragments.Mesh
}

// Slot is one texture-group material slot on the base mesh, with the set of
// palette names that provide an alternate material for it.
type Slot struct {
	ID       int
	Piece    string
	Palettes []string
}

// Report is the per-actor summary printed by the list-characters operation.
type Report struct {
	ActorName string
	SkinCount int
	Slots     []Slot
}

// List groups every 0x14 Actor in wldFile by character name and reports
// each one's material slots and the palettes available for them, mirroring
// the original tool's character/skin enumeration.
func List(wldFile wld.WldFile) []Report {
	actors := make(map[string]*Actor)

	importCharacters(wldFile, actors)
	importCharacterPalettes(wldFile, actors)

	var reports []Report
	for _, name := range sortedKeys(actors) {
		actor := actors[name]
		if actor.baseMesh == nil {
			continue
		}
		reports = append(reports, buildReport(actor))
	}
	return reports
}

func importCharacters(wldFile wld.WldFile, actors map[string]*Actor) {
	for _, actorDef := range wld.GetFragmentsByType[*fragments.Actor](wldFile) {
		name := stripActorSuffix(actorDef.GetName())
		actor, ok := actors[name]
		if !ok {
			actor = &Actor{Name: name, Skins: map[string]*Skin{"00": newSkin("00")}}
			actors[name] = actor
		}

		mesh := resolveActorMesh(actorDef)
		if mesh == nil || actor.baseMesh != nil {
			continue
		}
		actor.baseMesh = mesh

		skin := actor.Skins["00"]
		if mesh.MaterialList != nil {
			for _, matDef := range mesh.MaterialList.Materials {
				skin.Materials[matDef.GetName()] = matDef
			}
		}
	}
}

func importCharacterPalettes(wldFile wld.WldFile, actors map[string]*Actor) {
	for _, matDef := range wld.GetFragmentsByType[*fragments.Material](wldFile) {
		actorName, _, palette, ok := explodeMaterialName(matDef.GetName())
		if !ok {
			continue
		}
		actor, ok := actors[actorName]
		if !ok {
			continue
		}
		skin, ok := actor.Skins[palette]
		if !ok {
			skin = newSkin(palette)
			actor.Skins[palette] = skin
		}
		skin.Materials[matDef.GetName()] = matDef
	}

	for _, meshDef := range wld.GetFragmentsByType[*fragments.Mesh](wldFile) {
		actorName, _, palette, ok := explodeMeshName(meshDef.GetName())
		if !ok {
			continue
		}
		actor, ok := actors[actorName]
		if !ok || meshDef.MaterialList == nil {
			continue
		}
		skin, ok := actor.Skins[palette]
		if !ok {
			skin = newSkin(palette)
			actor.Skins[palette] = skin
		}
		for _, matDef := range meshDef.MaterialList.Materials {
			skin.Materials[matDef.GetName()] = matDef
		}
	}
}

func buildReport(actor *Actor) Report {
	slotIDs := make(map[int]struct{})
	for _, group := range actor.baseMesh.MaterialGroups {
		slotIDs[group.MaterialIndex] = struct{}{}
	}

	var ids []int
	for id := range slotIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	materialsBySlot := orderedMaterials(actor.baseMesh.MaterialList)
	var slots []Slot
	for _, id := range ids {
		if id < 0 || id >= len(materialsBySlot) {
			continue
		}
		matName := materialsBySlot[id].GetName()
		_, piece, _, ok := explodeMaterialName(matName)
		if !ok {
			continue
		}

		var palettes []string
		for _, paletteName := range skinNames(actor.Skins) {
			skin := actor.Skins[paletteName]
			combined := combineMaterialName(actor.Name, paletteName, piece)
			if _, ok := skin.Materials[combined]; ok {
				palettes = append(palettes, paletteName)
			}
		}

		slots = append(slots, Slot{ID: id, Piece: piece, Palettes: palettes})
	}

	return Report{ActorName: actor.Name, SkinCount: len(actor.Skins), Slots: slots}
}

func orderedMaterials(list *fragments.MaterialList) []*fragments.Material {
	if list == nil {
		return nil
	}
	return list.Materials
}

func skinNames(m map[string]*Skin) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func resolveActorMesh(actor *fragments.Actor) *fragments.Mesh {
	if mesh, ok := actor.MeshReference.(*fragments.Mesh); ok {
		return mesh
	}
	if actor.SkeletonReference != nil && actor.SkeletonReference.SkeletonHierarchy != nil {
		for _, ref := range actor.SkeletonReference.SkeletonHierarchy.Meshes {
			if mesh, ok := ref.(*fragments.Mesh); ok {
				return mesh
			}
		}
	}
	return nil
}

func stripActorSuffix(name string) string {
	const suffix = "_ACTORDEF"
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		return name[:len(name)-len(suffix)]
	}
	return name
}

func sortedKeys(m map[string]*Actor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
