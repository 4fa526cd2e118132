package course

import (
	"sort"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// precedence orders siblings by type. Types missing from the table sort with
// unknown.
var precedence = map[interfaces.ResourceType]int{
	interfaces.ResourceTypeNone:       0,
	interfaces.ResourceTypeUnit:       1,
	interfaces.ResourceTypeSide:       2,
	interfaces.ResourceTypeTalk:       3,
	interfaces.ResourceTypeLab:        4,
	interfaces.ResourceTypeNote:       5,
	interfaces.ResourceTypeWeb:        6,
	interfaces.ResourceTypeGithub:     7,
	interfaces.ResourceTypePanelNote:  8,
	interfaces.ResourceTypePanelTalk:  9,
	interfaces.ResourceTypeArchive:    10,
	interfaces.ResourceTypePanelVideo: 11,
	interfaces.ResourceTypeTopic:      12,
	interfaces.ResourceTypeUnknown:    13,
}

// Precedence returns the sort rank of t.
func Precedence(t interfaces.ResourceType) int {
	if rank, ok := precedence[t]; ok {
		return rank
	}
	return precedence[interfaces.ResourceTypeUnknown]
}

// sortByPrecedence orders los by type rank, keeping discovery order within a type.
func sortByPrecedence(los []*interfaces.LearningObject) {
	sort.SliceStable(los, func(i, j int) bool {
		return Precedence(los[i].Type) < Precedence(los[j].Type)
	})
}
