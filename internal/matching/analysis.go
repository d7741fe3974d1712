package matching

import (
	"strings"

	"github.com/google/uuid"
)

// Analysis подробный разбор совпадения двух пользователей.
type Analysis struct {
	TargetID              uuid.UUID `json:"userId"`
	TargetName            string    `json:"name"`
	SkillsYouCanTeachThem []string  `json:"skillsYouCanTeachThem"`
	SkillsTheyCanTeachYou []string  `json:"skillsTheyCanTeachYou"`
	MatchScore            int       `json:"matchScore"`
	IsValidMatch          bool      `json:"isValidMatch"`
	SameLocation          bool      `json:"sameLocation"`
	Recommendations       []string  `json:"recommendations"`
}

// Analyze строит разбор пары requester → target.
func Analyze(requester, target Profile) Analysis {
	teach, learn := Pair(requester, target)
	same := sameLocation(requester.Location, target.Location)

	return Analysis{
		TargetID:              target.UserID,
		TargetName:            target.Name,
		SkillsYouCanTeachThem: teach,
		SkillsTheyCanTeachYou: learn,
		MatchScore:            Score(teach, learn),
		IsValidMatch:          len(teach) > 0 && len(learn) > 0,
		SameLocation:          same,
		Recommendations:       recommend(len(teach), len(learn), same, requester.Location, target.Location),
	}
}

func recommend(teach, learn int, same bool, locA, locB string) []string {
	out := make([]string, 0, 3)

	switch {
	case teach == 0 && learn == 0:
		out = append(out, "У вас пока нет общих навыков для обмена")
	case teach == 0:
		out = append(out, "Вы пока не можете ничему научить этого пользователя: добавьте навыки из его списка желаемых")
	case learn == 0:
		out = append(out, "Этот пользователь пока не владеет навыками, которые вы хотите изучить")
	default:
		out = append(out, "Отличный вариант для обмена: вы можете обучать друг друга")
		if diff := teach - learn; diff >= 2 || diff <= -2 {
			out = append(out, "Обмен несбалансирован, договоритесь о равном количестве занятий")
		}
	}

	switch {
	case same:
		out = append(out, "Вы из одного города, можно заниматься очно")
	case strings.TrimSpace(locA) != "" && strings.TrimSpace(locB) != "":
		out = append(out, "Вы в разных городах, подойдут онлайн-занятия")
	}

	return out
}

func sameLocation(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
