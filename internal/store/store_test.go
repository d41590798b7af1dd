package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/go-ports/pets/internal/models"
	"github.com/go-ports/pets/internal/store"
)

// petsEqual compares pet slices including their unexported fields.
var petsEqual = qt.CmpEquals(cmp.AllowUnexported(models.Pet{}))

func mustPet(t *testing.T, name, species string, age int) models.Pet {
	t.Helper()
	p, err := models.NewPet(name, species, age)
	if err != nil {
		t.Fatalf("mustPet: %v", err)
	}
	return p
}

// sampleStore returns the three-record store used across these tests.
func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(
		mustPet(t, "Барсик", "CAT", 3),
		mustPet(t, "Шарик", "DOG", 5),
		mustPet(t, "Мурка", "CAT", 2),
	)
}

func names(pets []models.Pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.Name()
	}
	return out
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func TestAdd_HappyPath(t *testing.T) {
	c := qt.New(t)

	s := store.New()
	p, err := s.Add("Барсик", "cat", 3)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name(), qt.Equals, "Барсик")
	c.Assert(p.Species(), qt.Equals, models.SpeciesCat)
	c.Assert(p.Age(), qt.Equals, 3)
	c.Assert(s.Len(), qt.Equals, 1)

	_, err = s.Add("Барсик", "cat", 3)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Len(), qt.Equals, 2, qt.Commentf("duplicates are allowed"))

	_, err = s.Add("Змей", "snake", 4)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Pets()[2].Species(), qt.Equals, models.SpeciesOther)
}

func TestAdd_FailurePath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		petName string
		age     int
	}{
		{"blank name", "  ", 3},
		{"negative age", "Барсик", -1},
		{"age above limit", "Барсик", 101},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			s := sampleStore(t)
			before := s.Pets()
			_, err := s.Add(tc.petName, "cat", tc.age)
			c.Assert(errors.Is(err, models.ErrValidation), qt.IsTrue)
			c.Assert(s.Len(), qt.Equals, 3)
			c.Assert(s.Pets(), petsEqual, before)
		})
	}
}

func TestPets_ReturnsCopy(t *testing.T) {
	c := qt.New(t)

	s := sampleStore(t)
	got := s.Pets()
	got[0] = mustPet(t, "Чужой", "fish", 1)
	c.Assert(s.Pets()[0].Name(), qt.Equals, "Барсик")
}

// ---------------------------------------------------------------------------
// ListAll
// ---------------------------------------------------------------------------

func TestListAll_Empty(t *testing.T) {
	c := qt.New(t)
	c.Assert(store.New().ListAll(), qt.Equals, "Список питомцев пуст.")
}

func TestListAll_HappyPath(t *testing.T) {
	c := qt.New(t)

	rule := strings.Repeat("-", 40)
	want := strings.Join([]string{
		"",
		"Список всех питомцев:",
		rule,
		"1. Барсик - кот, 3 лет",
		"2. Шарик - собака, 5 лет",
		"3. Мурка - кот, 2 лет",
		rule,
		"Всего: 3 питомцев",
	}, "\n")
	c.Assert(sampleStore(t).ListAll(), qt.Equals, want)
}

// ---------------------------------------------------------------------------
// FindBySpecies
// ---------------------------------------------------------------------------

func TestFindBySpecies_HappyPath(t *testing.T) {
	c := qt.New(t)

	s := sampleStore(t)
	got := s.FindBySpecies("cat")
	c.Assert(got, petsEqual, []models.Pet{
		mustPet(t, "Барсик", "CAT", 3),
		mustPet(t, "Мурка", "CAT", 2),
	})

	c.Assert(names(s.FindBySpecies(" Dog ")), qt.DeepEquals, []string{"Шарик"})
}

func TestFindBySpecies_NoMatches(t *testing.T) {
	c := qt.New(t)

	s := sampleStore(t)
	c.Run("recognized tag with no members", func(c *qt.C) {
		got := s.FindBySpecies("fish")
		c.Assert(got, qt.IsNotNil)
		c.Assert(got, qt.HasLen, 0)
	})
	c.Run("unrecognized query", func(c *qt.C) {
		c.Assert(s.FindBySpecies("dragon"), qt.HasLen, 0)
	})
	c.Run("empty store", func(c *qt.C) {
		c.Assert(store.New().FindBySpecies("cat"), qt.HasLen, 0)
	})
}

func TestFindBySpecies_Other(t *testing.T) {
	c := qt.New(t)

	s := store.New(
		mustPet(t, "Смауг", "dragon", 50),
		mustPet(t, "Барсик", "cat", 3),
	)
	c.Assert(names(s.FindBySpecies("other")), qt.DeepEquals, []string{"Смауг"})
	c.Assert(s.FindBySpecies("dragon"), qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

func TestSortByName(t *testing.T) {
	c := qt.New(t)

	s := sampleStore(t)
	s.SortByName()
	c.Assert(names(s.Pets()), qt.DeepEquals, []string{"Барсик", "Мурка", "Шарик"})
}

func TestSortByName_Ordinal(t *testing.T) {
	c := qt.New(t)

	s := store.New(
		mustPet(t, "bob", "cat", 1),
		mustPet(t, "Zed", "cat", 1),
		mustPet(t, "Алиса", "cat", 1),
		mustPet(t, "alice", "cat", 1),
	)
	s.SortByName()
	c.Assert(names(s.Pets()), qt.DeepEquals, []string{"Zed", "alice", "bob", "Алиса"})
}

func TestSortByName_Stable(t *testing.T) {
	c := qt.New(t)

	s := store.New(
		mustPet(t, "Рекс", "dog", 4),
		mustPet(t, "Барсик", "cat", 3),
		mustPet(t, "Рекс", "fish", 1),
		mustPet(t, "Барсик", "bird", 9),
	)
	s.SortByName()
	got := s.Pets()
	c.Assert(got[0].Species(), qt.Equals, models.SpeciesCat)
	c.Assert(got[1].Species(), qt.Equals, models.SpeciesBird)
	c.Assert(got[2].Species(), qt.Equals, models.SpeciesDog)
	c.Assert(got[3].Species(), qt.Equals, models.SpeciesFish)
}

func TestSortByAge(t *testing.T) {
	c := qt.New(t)

	c.Run("ascending", func(c *qt.C) {
		s := sampleStore(t)
		s.SortByAge(false)
		c.Assert(names(s.Pets()), qt.DeepEquals, []string{"Мурка", "Барсик", "Шарик"})
	})
	c.Run("descending", func(c *qt.C) {
		s := sampleStore(t)
		s.SortByAge(true)
		c.Assert(names(s.Pets()), qt.DeepEquals, []string{"Шарик", "Барсик", "Мурка"})
	})
}

func TestSortByAge_Stable(t *testing.T) {
	c := qt.New(t)

	build := func() *store.Store {
		return store.New(
			mustPet(t, "a", "cat", 2),
			mustPet(t, "b", "cat", 1),
			mustPet(t, "c", "cat", 2),
			mustPet(t, "d", "cat", 1),
			mustPet(t, "e", "cat", 2),
		)
	}

	c.Run("ascending keeps ties in order", func(c *qt.C) {
		s := build()
		s.SortByAge(false)
		c.Assert(names(s.Pets()), qt.DeepEquals, []string{"b", "d", "a", "c", "e"})
	})
	c.Run("descending keeps ties in order", func(c *qt.C) {
		s := build()
		s.SortByAge(true)
		c.Assert(names(s.Pets()), qt.DeepEquals, []string{"a", "c", "e", "b", "d"})
	})
}

// ---------------------------------------------------------------------------
// Statistics
// ---------------------------------------------------------------------------

func TestStatistics(t *testing.T) {
	c := qt.New(t)

	c.Run("empty store reports only total", func(c *qt.C) {
		st := store.New().Statistics()
		c.Assert(st.Total, qt.Equals, 0)
		c.Assert(st.AverageAge, qt.IsNil)
		c.Assert(st.BySpecies, qt.IsNil)
	})

	c.Run("populated store", func(c *qt.C) {
		s := store.New(
			mustPet(t, "a", "cat", 3),
			mustPet(t, "b", "dog", 5),
			mustPet(t, "c", "cat", 2),
			mustPet(t, "d", "bird", 1),
		)
		st := s.Statistics()
		c.Assert(st.Total, qt.Equals, 4)
		c.Assert(*st.AverageAge, qt.Equals, 2.75)
		c.Assert(st.BySpecies.Get(models.SpeciesCat), qt.Equals, 2)
		c.Assert(st.BySpecies.Get(models.SpeciesDog), qt.Equals, 1)
		c.Assert(st.BySpecies.Get(models.SpeciesBird), qt.Equals, 1)
		c.Assert(st.BySpecies, qt.HasLen, 3)
	})
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

func TestSaveToFile_Format(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	s := store.New(mustPet(t, "Барсик", "cat", 3))
	c.Assert(s.SaveToFile(path), qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "[\n  {\n    \"name\": \"Барсик\",\n    \"species\": \"CAT\",\n    \"age\": 3\n  }\n]\n")
}

func TestSaveToFile_EmptyStore(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	c.Assert(store.New().SaveToFile(path), qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(string(data)), qt.Equals, "[]")
}

func TestSaveToFile_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pets.json")
	c.Assert(os.WriteFile(path, []byte("old content that is longer than the new one"), 0o600), qt.IsNil)

	c.Assert(store.New().SaveToFile(path), qt.IsNil)

	entries, err := os.ReadDir(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 1)
	c.Assert(entries[0].Name(), qt.Equals, "pets.json")
}

func TestSaveToFile_FailurePath(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "missing-dir", "pets.json")
	err := sampleStore(t).SaveToFile(path)
	c.Assert(errors.Is(err, store.ErrIO), qt.IsTrue)
}

func TestRoundTrip(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		pets []models.Pet
	}{
		{"empty", []models.Pet{}},
		{"sample", sampleStore(t).Pets()},
		{"duplicates and every species", []models.Pet{
			mustPet(t, "  Пробел  ", "rodent", 0),
			mustPet(t, "Немо", "fish", 100),
			mustPet(t, "Немо", "fish", 100),
			mustPet(t, "Кеша", "bird", 1),
			mustPet(t, "Смауг", "dragon", 42),
			mustPet(t, `quote " and <tag>`, "dog", 7),
		}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			path := filepath.Join(t.TempDir(), "pets.json")
			c.Assert(store.New(tc.pets...).SaveToFile(path), qt.IsNil)

			loaded := store.New()
			c.Assert(loaded.LoadFromFile(path), qt.IsNil)
			c.Assert(loaded.Pets(), petsEqual, tc.pets)
		})
	}
}

func TestLoadFromFile_ReplacesContents(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	c.Assert(store.New(mustPet(t, "Кеша", "bird", 1)).SaveToFile(path), qt.IsNil)

	s := sampleStore(t)
	c.Assert(s.LoadFromFile(path), qt.IsNil)
	c.Assert(names(s.Pets()), qt.DeepEquals, []string{"Кеша"})
}

func TestLoadFromFile_UnknownSpeciesBecomesOther(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	content := `[
		{"name": "Смауг", "species": "DRAGON", "age": 50},
		{"name": "Барсик", "species": "cat", "age": 3},
		{"name": "Без вида", "age": 1},
		{"name": "Число", "species": 5, "age": 2},
		{"name": "Объект", "species": {"tag": "CAT"}, "age": 2},
		{"name": "Список", "species": ["CAT"], "age": 2},
		{"name": "Пусто", "species": null, "age": 2},
		{"name": "Флаг", "species": true, "age": 2}
	]`
	c.Assert(os.WriteFile(path, []byte(content), 0o600), qt.IsNil)

	s := store.New()
	c.Assert(s.LoadFromFile(path), qt.IsNil)
	c.Assert(s.Len(), qt.Equals, 8)
	for _, p := range s.Pets() {
		c.Assert(p.Species(), qt.Equals, models.SpeciesOther, qt.Commentf("pet %s", p.Name()))
	}
}

func TestLoadFromFile_KeysAreCaseSensitive(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	c.Assert(os.WriteFile(path, []byte(`[{"NAME": "A", "SPECIES": "CAT", "AGE": 3}]`), 0o600), qt.IsNil)

	s := store.New()
	err := s.LoadFromFile(path)
	c.Assert(errors.Is(err, store.ErrParse), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, ".*record 0: missing name")
	c.Assert(s.Len(), qt.Equals, 0)

	c.Run("only exact species key is read", func(c *qt.C) {
		c.Assert(os.WriteFile(path, []byte(`[{"name": "A", "Species": "CAT", "age": 3}]`), 0o600), qt.IsNil)
		c.Assert(s.LoadFromFile(path), qt.IsNil)
		c.Assert(s.Pets()[0].Species(), qt.Equals, models.SpeciesOther)
	})
}

func TestLoadFromFile_FailurePath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		content *string
		wantErr error
	}{
		{"missing file", nil, store.ErrNotFound},
		{"not json", ptr("not json"), store.ErrParse},
		{"empty file", ptr(""), store.ErrParse},
		{"object instead of array", ptr(`{"name": "x"}`), store.ErrParse},
		{"null", ptr("null"), store.ErrParse},
		{"missing name", ptr(`[{"species": "CAT", "age": 3}]`), store.ErrParse},
		{"missing age", ptr(`[{"name": "x", "species": "CAT"}]`), store.ErrParse},
		{"null name", ptr(`[{"name": null, "species": "CAT", "age": 3}]`), store.ErrParse},
		{"numeric name", ptr(`[{"name": 7, "species": "CAT", "age": 3}]`), store.ErrParse},
		{"null record", ptr(`[null]`), store.ErrParse},
		{"fractional age", ptr(`[{"name": "x", "species": "CAT", "age": 2.5}]`), store.ErrParse},
		{"string age", ptr(`[{"name": "x", "species": "CAT", "age": "2"}]`), store.ErrParse},
		{"invalid record", ptr(`[{"name": "x", "species": "CAT", "age": 300}]`), store.ErrParse},
		{"blank name", ptr(`[{"name": " ", "species": "CAT", "age": 3}]`), store.ErrParse},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			path := filepath.Join(t.TempDir(), "pets.json")
			if tc.content != nil {
				c.Assert(os.WriteFile(path, []byte(*tc.content), 0o600), qt.IsNil)
			}

			s := sampleStore(t)
			before := s.Pets()
			err := s.LoadFromFile(path)
			c.Assert(errors.Is(err, tc.wantErr), qt.IsTrue, qt.Commentf("got %v", err))
			c.Assert(s.Pets(), petsEqual, before)
		})
	}
}

func TestLoadFromFile_InvalidRecordWrapsValidation(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "pets.json")
	c.Assert(os.WriteFile(path, []byte(`[{"name": "x", "species": "CAT", "age": -4}]`), 0o600), qt.IsNil)

	err := store.New().LoadFromFile(path)
	c.Assert(errors.Is(err, store.ErrParse), qt.IsTrue)
	c.Assert(errors.Is(err, models.ErrValidation), qt.IsTrue)
}

func TestLoadFromFile_DirectoryIsIOError(t *testing.T) {
	c := qt.New(t)

	err := store.New().LoadFromFile(t.TempDir())
	c.Assert(errors.Is(err, store.ErrIO), qt.IsTrue)
}

func ptr(s string) *string { return &s }
