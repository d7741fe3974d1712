package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_ValidMatchSameCity(t *testing.T) {
	a := profile("Alice", "Berlin", []string{"Guitar"}, []string{"Python"})
	b := profile("Bob", " berlin", []string{"Python"}, []string{"Guitar"})

	res := Analyze(a, b)

	assert.True(t, res.IsValidMatch)
	assert.True(t, res.SameLocation)
	assert.Equal(t, 2, res.MatchScore)
	assert.Equal(t, b.UserID, res.TargetID)
	assert.Equal(t, []string{"Guitar"}, res.SkillsYouCanTeachThem)
	assert.Equal(t, []string{"Python"}, res.SkillsTheyCanTeachYou)
	assert.Contains(t, res.Recommendations, "Отличный вариант для обмена: вы можете обучать друг друга")
	assert.Contains(t, res.Recommendations, "Вы из одного города, можно заниматься очно")
}

func TestAnalyze_OneDirectional(t *testing.T) {
	a := profile("Alice", "Berlin", []string{"Guitar"}, nil)
	b := profile("Bob", "Paris", nil, []string{"Guitar"})

	res := Analyze(a, b)

	assert.False(t, res.IsValidMatch)
	assert.Equal(t, []string{"Guitar"}, res.SkillsYouCanTeachThem)
	assert.Empty(t, res.SkillsTheyCanTeachYou)
	assert.Contains(t, res.Recommendations, "Этот пользователь пока не владеет навыками, которые вы хотите изучить")
	assert.Contains(t, res.Recommendations, "Вы в разных городах, подойдут онлайн-занятия")
}

func TestAnalyze_NoReciprocalTeachingSkill(t *testing.T) {
	a := profile("Alice", "", nil, []string{"Python"})
	b := profile("Bob", "", []string{"Python"}, nil)

	res := Analyze(a, b)

	assert.False(t, res.IsValidMatch)
	assert.False(t, res.SameLocation)
	assert.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "не можете ничему научить")
}

func TestAnalyze_NothingInCommon(t *testing.T) {
	res := Analyze(profile("A", "", nil, nil), profile("B", "", nil, nil))

	assert.False(t, res.IsValidMatch)
	assert.Equal(t, 0, res.MatchScore)
	assert.Equal(t, []string{"У вас пока нет общих навыков для обмена"}, res.Recommendations)
}

func TestAnalyze_Unbalanced(t *testing.T) {
	a := profile("A", "", []string{"Guitar", "Piano", "Chess"}, []string{"Python"})
	b := profile("B", "", []string{"Python"}, []string{"Guitar", "Piano", "Chess"})

	res := Analyze(a, b)

	assert.True(t, res.IsValidMatch)
	assert.Equal(t, 4, res.MatchScore)
	assert.Contains(t, res.Recommendations, "Обмен несбалансирован, договоритесь о равном количестве занятий")
}
