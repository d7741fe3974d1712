package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(name, location string, have, want []string) Profile {
	return Profile{UserID: uuid.New(), Name: name, Location: location, Have: have, Want: want}
}

func TestFindCandidates_ReciprocalPair(t *testing.T) {
	a := profile("Alice", "Berlin", []string{"Guitar"}, []string{"Python"})
	b := profile("Bob", "Berlin", []string{"Python"}, []string{"Guitar"})

	got, total := FindCandidates(a, []Profile{a, b}, Filters{})

	require.Len(t, got, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, b.UserID, got[0].UserID)
	assert.Equal(t, []string{"Guitar"}, got[0].SkillsYouCanTeachThem)
	assert.Equal(t, []string{"Python"}, got[0].SkillsTheyCanTeachYou)
	assert.Equal(t, 2, got[0].MatchScore)
}

func TestFindCandidates_OneDirectionalExcluded(t *testing.T) {
	a := profile("Alice", "", []string{"Guitar"}, nil)
	b := profile("Bob", "", nil, []string{"Guitar"})

	got, total := FindCandidates(a, []Profile{b}, Filters{})

	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestFindCandidates_EmptyProfileHasNoCandidates(t *testing.T) {
	empty := profile("Empty", "", nil, nil)
	b := profile("Bob", "", []string{"Python"}, []string{"Guitar"})

	got, _ := FindCandidates(empty, []Profile{b}, Filters{})
	assert.Empty(t, got)

	got, _ = FindCandidates(b, []Profile{empty}, Filters{})
	assert.Empty(t, got)
}

func TestFindCandidates_CaseInsensitive(t *testing.T) {
	a := profile("Alice", "", []string{"guitar"}, []string{"PYTHON"})
	b := profile("Bob", "", []string{"Python"}, []string{"GUITAR"})

	got, _ := FindCandidates(a, []Profile{b}, Filters{})

	require.Len(t, got, 1)
	assert.Equal(t, []string{"guitar"}, got[0].SkillsYouCanTeachThem)
	assert.Equal(t, []string{"Python"}, got[0].SkillsTheyCanTeachYou)
}

func TestFindCandidates_ExcludesRequester(t *testing.T) {
	a := profile("Alice", "", []string{"Guitar"}, []string{"Guitar"})

	got, _ := FindCandidates(a, []Profile{a}, Filters{})
	assert.Empty(t, got)
}

func TestFindCandidates_RankingByScoreThenName(t *testing.T) {
	me := profile("Me", "", []string{"Guitar", "Piano", "Chess"}, []string{"Python", "Go"})
	zed := profile("Zed", "", []string{"Python", "Go"}, []string{"Guitar", "Piano"})
	bob := profile("bob", "", []string{"Python"}, []string{"Guitar"})
	amy := profile("Amy", "", []string{"Go"}, []string{"Chess"})

	got, total := FindCandidates(me, []Profile{bob, zed, amy}, Filters{})

	require.Equal(t, 3, total)
	assert.Equal(t, "Zed", got[0].Name)
	assert.Equal(t, 4, got[0].MatchScore)
	// При равной оценке сортировка по имени без учёта регистра.
	assert.Equal(t, "Amy", got[1].Name)
	assert.Equal(t, "bob", got[2].Name)
}

func TestFindCandidates_Symmetry(t *testing.T) {
	users := []Profile{
		profile("A", "", []string{"Guitar", "Cooking"}, []string{"Python"}),
		profile("B", "", []string{"python"}, []string{"guitar"}),
		profile("C", "", []string{"Cooking"}, []string{"Spanish"}),
		profile("D", "", []string{"Spanish", "Python"}, []string{"Cooking"}),
		profile("E", "", nil, []string{"Guitar"}),
	}

	isCandidate := func(of, who Profile) bool {
		got, _ := FindCandidates(of, users, Filters{Limit: 100})
		for _, c := range got {
			if c.UserID == who.UserID {
				return true
			}
		}
		return false
	}

	for _, x := range users {
		for _, y := range users {
			if x.UserID == y.UserID {
				continue
			}
			assert.Equal(t, isCandidate(x, y), isCandidate(y, x), "симметрия нарушена для %s/%s", x.Name, y.Name)
		}
	}
}

func TestPair_MirrorsFromEachSide(t *testing.T) {
	a := profile("A", "", []string{"Guitar", "Chess"}, []string{"Python", "Drawing"})
	b := profile("B", "", []string{"Drawing", "Python"}, []string{"chess", "GUITAR"})

	teachAB, learnAB := Pair(a, b)
	teachBA, learnBA := Pair(b, a)

	assert.Equal(t, teachAB, learnBA)
	assert.Equal(t, learnAB, teachBA)
	assert.Equal(t, Score(teachAB, learnAB), Score(teachBA, learnBA))
}

func TestFindCandidates_Filters(t *testing.T) {
	me := profile("Me", "Berlin", []string{"Guitar", "Chess"}, []string{"Python", "Go"})
	berlin := profile("Berliner", "Berlin, DE", []string{"Python"}, []string{"Guitar"})
	paris := profile("Parisian", "Paris", []string{"Python", "Go"}, []string{"Guitar", "Chess"})

	got, _ := FindCandidates(me, []Profile{berlin, paris}, Filters{Location: "berlin"})
	require.Len(t, got, 1)
	assert.Equal(t, "Berliner", got[0].Name)

	got, _ = FindCandidates(me, []Profile{berlin, paris}, Filters{Skill: "ches"})
	require.Len(t, got, 1)
	assert.Equal(t, "Parisian", got[0].Name)

	got, _ = FindCandidates(me, []Profile{berlin, paris}, Filters{MinOverlap: 2})
	require.Len(t, got, 1)
	assert.Equal(t, "Parisian", got[0].Name)
}

func TestFindCandidates_Pagination(t *testing.T) {
	me := profile("Me", "", []string{"Guitar"}, []string{"Python"})
	others := []Profile{
		profile("A", "", []string{"Python"}, []string{"Guitar"}),
		profile("B", "", []string{"Python"}, []string{"Guitar"}),
		profile("C", "", []string{"Python"}, []string{"Guitar"}),
	}

	got, total := FindCandidates(me, others, Filters{Limit: 2, Offset: 1})
	assert.Equal(t, 3, total)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "C", got[1].Name)

	got, total = FindCandidates(me, others, Filters{Limit: 2, Offset: 10})
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}

func TestOverlap_DeduplicatesAndSorts(t *testing.T) {
	got := Overlap([]string{"piano", "Guitar", "guitar ", "  Piano"}, []string{"GUITAR", "PIANO"})
	assert.Equal(t, []string{"Guitar", "piano"}, got)
}

func TestFilters_Normalize(t *testing.T) {
	f := Filters{MinOverlap: -1, Limit: 500, Offset: -3}.Normalize()
	assert.Equal(t, 1, f.MinOverlap)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 0, f.Offset)
}
