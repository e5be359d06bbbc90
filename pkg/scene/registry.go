package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned for a scene name that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string   `json:"id"`          // Name used on the command line
	DisplayName string   `json:"displayName"` // UI display name
	Description string   `json:"description"`
	Group       string   `json:"group"` // Grouping category
	Defaults    Defaults `json:"defaults"`
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// Builder constructs a scene
type Builder func(opts Options) (*Scene, error)

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = []registration{
	{SceneInfo{ID: "random", Description: "Bouncing spheres on a checkered ground", Group: "Spheres", Defaults: outdoorDefaults}, NewRandomScene},
	{SceneInfo{ID: "two-spheres", Description: "Two checkered spheres", Group: "Spheres", Defaults: outdoorDefaults}, NewTwoSpheresScene},
	{SceneInfo{ID: "two-perlin-spheres", Description: "Marble ground and sphere", Group: "Spheres", Defaults: outdoorDefaults}, NewTwoPerlinSpheresScene},
	{SceneInfo{ID: "earth", Description: "Image-textured globe", Group: "Spheres", Defaults: outdoorDefaults}, NewEarthScene},
	{SceneInfo{ID: "simple-light", Description: "Marble spheres lit by area lights", Group: "Lights", Defaults: simpleLightDefaults}, NewSimpleLightScene},
	{SceneInfo{ID: "cornell", Description: "Cornell box with two rotated blocks", Group: "Lights", Defaults: cornellDefaults}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke blocks", Group: "Volumes", Defaults: cornellDefaults}, NewCornellSmokeScene},
	{SceneInfo{ID: "final", Description: "Every feature in one scene", Group: "Volumes", Defaults: finalDefaults}, NewFinalScene},
}

func init() {
	for i := range registry {
		registry[i].info.DisplayName = titleCase(registry[i].info.ID)
	}
}

// Names returns the registered scene names in registration order
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.info.ID
	}
	return names
}

// Lookup returns the description of a registered scene
func Lookup(name string) (SceneInfo, error) {
	for _, r := range registry {
		if r.info.ID == name {
			return r.info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("%q (available: %s): %w", name, strings.Join(Names(), ", "), ErrUnknownScene)
}

// ByName builds a registered scene
func ByName(name string, opts Options) (*Scene, error) {
	for _, r := range registry {
		if r.info.ID == name {
			return r.build(opts)
		}
	}
	_, err := Lookup(name)
	return nil, err
}

// ListScenes returns the built-in scenes grouped by category, groups in first-seen order
func ListScenes() []SceneGroup {
	var groups []SceneGroup
	index := make(map[string]int)
	for _, r := range registry {
		i, ok := index[r.info.Group]
		if !ok {
			i = len(groups)
			index[r.info.Group] = i
			groups = append(groups, SceneGroup{Name: r.info.Group})
		}
		groups[i].Scenes = append(groups[i].Scenes, r.info)
	}
	return groups
}

// titleCase converts a dash- or underscore-separated id to Title Case
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
