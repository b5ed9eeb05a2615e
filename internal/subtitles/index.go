package subtitles

import (
	"sort"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// CueIndex est une séquence de cues ordonnée par Start, avec recherche par instant.
// Un index n'est jamais modifié : un changement de piste construit un nouvel index.
type CueIndex struct {
	cues []model.Cue
	// maxEnd[i] = max(End(cues[0..i])), croissant : permet de retrouver
	// un long cue qui recouvre plusieurs cues courts.
	maxEnd []float64
}

// Build copie cues et les trie par Start (tri stable) s'ils ne le sont pas déjà.
func Build(cues []model.Cue) *CueIndex {
	out := make([]model.Cue, len(cues))
	copy(out, cues)
	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].Start < out[j].Start }) {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	}
	maxEnd := make([]float64, len(out))
	for i, c := range out {
		maxEnd[i] = c.End()
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return &CueIndex{cues: out, maxEnd: maxEnd}
}

func (x *CueIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.cues)
}

// At retourne le cue d'indice i (cible d'un clic dans la liste).
func (x *CueIndex) At(i int) (model.Cue, bool) {
	if x == nil || i < 0 || i >= len(x.cues) {
		return model.Cue{}, false
	}
	return x.cues[i], true
}

// Cues retourne une copie de la séquence ordonnée.
func (x *CueIndex) Cues() []model.Cue {
	if x == nil {
		return nil
	}
	out := make([]model.Cue, len(x.cues))
	copy(out, x.cues)
	return out
}

// ActiveIndexAt retourne l'indice d'un cue contenant t, ou -1 si aucun ne le contient.
// Recherche dichotomique sur Start : avec des cues qui se chevauchent,
// le cue retourné contient t mais n'est pas forcément le premier.
func (x *CueIndex) ActiveIndexAt(t float64) int {
	if x == nil {
		return -1
	}
	lo, hi := 0, len(x.cues)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		c := x.cues[mid]
		if c.Contains(t) {
			return mid
		}
		if c.Start < t {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	// dernier cue qui commence avant t, puis premier cue dont la fin cumulée dépasse t
	last := sort.Search(len(x.cues), func(i int) bool { return x.cues[i].Start > t }) - 1
	if last < 0 {
		return -1
	}
	j := sort.Search(last+1, func(i int) bool { return x.maxEnd[i] > t })
	if j <= last && x.cues[j].Contains(t) {
		return j
	}
	return -1
}

// ActiveCueAt retourne le cue actif à l'instant t.
func (x *CueIndex) ActiveCueAt(t float64) (model.Cue, bool) {
	return x.At(x.ActiveIndexAt(t))
}
