package assets

import "testing"

func TestRegistryFind(t *testing.T) {
	r := NewRegistry()

	if got := r.Find("/Game/BlenderAssets/PlayerShip"); got != nil {
		t.Errorf("Find on empty registry = %+v, want nil", got)
	}

	asset := &Asset{Name: "PlayerShip", Path: "/Game/BlenderAssets/PlayerShip", Kind: KindStaticMesh}
	r.Register(asset)

	if got := r.Find(asset.Path); got != asset {
		t.Errorf("Find(%q) = %+v, want the registered asset", asset.Path, got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	path := "/Game/BlenderAssets/PlayerShip"

	r.Register(&Asset{Name: "PlayerShip", Path: path, SourceFile: "v1.blend"})
	r.Register(&Asset{Name: "PlayerShip", Path: path, SourceFile: "v2.blend"})

	if r.Len() != 1 {
		t.Errorf("Len() = %d after re-register, want 1", r.Len())
	}
	if got := r.Find(path).SourceFile; got != "v2.blend" {
		t.Errorf("SourceFile = %q, want v2.blend", got)
	}
}

func TestRegistryFindUnder(t *testing.T) {
	r := NewRegistry()
	r.Register(&Asset{Name: "PlayerShip", Path: "/Game/BlenderAssets/PlayerShip"})
	r.Register(&Asset{Name: "EnemyShip", Path: "/Game/BlenderAssets/EnemyShip"})
	r.Register(&Asset{Name: "Rock", Path: "/Game/BlenderAssets/Props/Rock"})
	r.Register(&Asset{Name: "Cube", Path: "/Game/Other/Cube"})

	found := r.FindUnder("/Game/BlenderAssets")
	if len(found) != 3 {
		t.Fatalf("FindUnder returned %d assets, want 3", len(found))
	}

	// Sorted by path
	wantOrder := []string{
		"/Game/BlenderAssets/EnemyShip",
		"/Game/BlenderAssets/PlayerShip",
		"/Game/BlenderAssets/Props/Rock",
	}
	for i, want := range wantOrder {
		if found[i].Path != want {
			t.Errorf("found[%d].Path = %q, want %q", i, found[i].Path, want)
		}
	}

	// Prefix must match on path boundaries
	if got := r.FindUnder("/Game/Blender"); len(got) != 0 {
		t.Errorf("FindUnder(/Game/Blender) = %d assets, want 0", len(got))
	}

	// Trailing slash is tolerated
	if got := r.FindUnder("/Game/BlenderAssets/"); len(got) != 3 {
		t.Errorf("FindUnder with trailing slash = %d assets, want 3", len(got))
	}
}

func TestKindString(t *testing.T) {
	if KindStaticMesh.String() != "static_mesh" {
		t.Errorf("KindStaticMesh.String() = %q", KindStaticMesh.String())
	}
	if KindBlueprint.String() != "blueprint" {
		t.Errorf("KindBlueprint.String() = %q", KindBlueprint.String())
	}
}
