// Package matching содержит чистую логику взаимного подбора пользователей по навыкам.
// Пакет не ходит в базу: профили загружает репозиторий, здесь только пересечения и ранжирование.
package matching

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Profile навыки и публичные данные одного пользователя.
type Profile struct {
	UserID         uuid.UUID
	Name           string
	Bio            *string
	Location       string
	ProfilePicture *string
	Have           []string
	Want           []string
}

// Filters параметры выборки кандидатов.
type Filters struct {
	Location   string
	Skill      string
	MinOverlap int
	Limit      int
	Offset     int
}

// Normalize приводит фильтры к допустимым значениям.
func (f Filters) Normalize() Filters {
	f.Location = strings.TrimSpace(f.Location)
	f.Skill = strings.TrimSpace(f.Skill)
	if f.MinOverlap < 1 {
		f.MinOverlap = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Candidate пользователь, с которым возможен взаимный обмен.
type Candidate struct {
	UserID                uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Bio                   *string   `json:"bio,omitempty"`
	Location              string    `json:"location,omitempty"`
	ProfilePicture        *string   `json:"profile_picture,omitempty"`
	SkillsYouCanTeachThem []string  `json:"skillsYouCanTeachThem"`
	SkillsTheyCanTeachYou []string  `json:"skillsTheyCanTeachYou"`
	MatchScore            int       `json:"matchScore"`
}

// Overlap возвращает навыки из have, которые присутствуют в want.
// Сравнение без учёта регистра, имена берутся со стороны have, результат отсортирован.
func Overlap(have, want []string) []string {
	wanted := make(map[string]struct{}, len(want))
	for _, w := range want {
		if key := normalize(w); key != "" {
			wanted[key] = struct{}{}
		}
	}

	out := make([]string, 0)
	seen := make(map[string]struct{}, len(have))
	for _, h := range have {
		key := normalize(h)
		if key == "" {
			continue
		}
		if _, ok := wanted[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(h))
	}

	sort.Slice(out, func(i, j int) bool {
		return lessFold(out[i], out[j])
	})
	return out
}

// Pair считает оба пересечения для пары requester → other.
// teach: чему requester может научить other, learn: чему other может научить requester.
func Pair(requester, other Profile) (teach, learn []string) {
	return Overlap(requester.Have, other.Want), Overlap(other.Have, requester.Want)
}

// IsReciprocal true, если обмен возможен в обе стороны.
func IsReciprocal(requester, other Profile) bool {
	teach, learn := Pair(requester, other)
	return len(teach) > 0 && len(learn) > 0
}

// Score оценка совпадения: сумма размеров обоих пересечений.
func Score(teach, learn []string) int {
	return len(teach) + len(learn)
}

// FindCandidates отбирает взаимных кандидатов, ранжирует и применяет пагинацию.
// Возвращает страницу кандидатов и общее количество до пагинации.
func FindCandidates(requester Profile, others []Profile, filters Filters) ([]Candidate, int) {
	f := filters.Normalize()
	location := strings.ToLower(f.Location)
	skill := strings.ToLower(f.Skill)

	all := make([]Candidate, 0, len(others))
	for _, other := range others {
		if other.UserID == requester.UserID {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(other.Location), location) {
			continue
		}

		teach, learn := Pair(requester, other)
		if len(teach) < f.MinOverlap || len(learn) < f.MinOverlap {
			continue
		}
		if skill != "" && !containsSkill(teach, skill) && !containsSkill(learn, skill) {
			continue
		}

		all = append(all, Candidate{
			UserID:                other.UserID,
			Name:                  other.Name,
			Bio:                   other.Bio,
			Location:              other.Location,
			ProfilePicture:        other.ProfilePicture,
			SkillsYouCanTeachThem: teach,
			SkillsTheyCanTeachYou: learn,
			MatchScore:            Score(teach, learn),
		})
	}

	Rank(all)

	total := len(all)
	if f.Offset >= total {
		return []Candidate{}, total
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total
}

// Rank сортирует кандидатов: по убыванию оценки, затем по имени.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if !strings.EqualFold(a.Name, b.Name) {
			return lessFold(a.Name, b.Name)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.UserID.String() < b.UserID.String()
	})
}

func containsSkill(names []string, needle string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
