package skillet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/skillet/semver"
)

func TestCatalogAdd(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Add("lib", semver.MustParse("1.0.0"), nil))
	require.NoError(t, catalog.Add("lib", semver.MustParse("2.0.0"), nil))

	require.True(t, catalog.Has("lib"))
	require.False(t, catalog.Has("other"))
	require.Equal(t, 1, catalog.Len())
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Add("lib", semver.MustParse("1.0.0"), nil))
	require.Error(t, catalog.Add("lib", semver.MustParse("1.0.0"), nil))

	// Build metadata does not distinguish versions
	require.Error(t, catalog.Add("lib", semver.MustParse("1.0.0+build"), nil))
}

func TestCatalogRejectsSelfDependency(t *testing.T) {
	catalog := NewCatalog()
	err := catalog.Add("lib", semver.MustParse("1.0.0"), []SkillDependency{
		{Depender: "lib", Name: "lib"},
	})
	require.ErrorIs(t, err, ErrSelfDependency)
}

func TestCatalogVersionsAreSorted(t *testing.T) {
	catalog := NewCatalog()
	for _, v := range []string{"2.0.0", "1.0.0", "1.5.0", "2.0.0-rc.1"} {
		require.NoError(t, catalog.Add("lib", semver.MustParse(v), nil))
	}

	versions := catalog.Versions("lib")
	require.Len(t, versions, 4)
	require.Equal(t, "1.0.0", versions[0].String())
	require.Equal(t, "1.5.0", versions[1].String())
	require.Equal(t, "2.0.0-rc.1", versions[2].String())
	require.Equal(t, "2.0.0", versions[3].String())
}

func TestCatalogEntry(t *testing.T) {
	catalog := NewCatalog()
	dep, err := NewSkillDependency("app", "lib", semver.MustParseRange("^1.0.0"), false)
	require.NoError(t, err)
	require.NoError(t, catalog.Add("app", semver.MustParse("1.0.0"), []SkillDependency{dep}))

	entry, ok := catalog.Entry("app", semver.MustParse("1.0.0"))
	require.True(t, ok)
	require.Len(t, entry.Dependencies, 1)
	require.Equal(t, "lib", entry.Dependencies[0].Name)

	_, ok = catalog.Entry("app", semver.MustParse("2.0.0"))
	require.False(t, ok)
}

func TestCatalogNames(t *testing.T) {
	catalog := NewCatalog()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, catalog.Add(name, semver.MustParse("1.0.0"), nil))
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, catalog.Names())
}

func TestCatalogAddManifest(t *testing.T) {
	catalog := NewCatalog()
	m := &Manifest{
		Name:    "app",
		Version: "1.0.0",
		Dependencies: []ManifestDependency{
			{Name: "lib", Version: "^1.0.0"},
			{Name: "extras", Optional: true},
		},
	}
	require.NoError(t, catalog.AddManifest(m))

	entry, ok := catalog.Entry("app", semver.MustParse("1.0.0"))
	require.True(t, ok)
	require.Len(t, entry.Dependencies, 2)
	require.Equal(t, "app", entry.Dependencies[0].Depender)
	require.True(t, entry.Dependencies[1].Optional)
	require.True(t, entry.Dependencies[1].Range.Satisfies(semver.MustParse("9.9.9")))
}
