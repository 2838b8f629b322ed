package morph

import (
	"encoding/json"
	"fmt"
)

const (
	agreementBase  = 100
	possessionBase = 110
	caseBase       = 120
	derivBase      = 200
	copBase        = 250
	vnegBase       = 310
	vtenseBase     = 320
	vderivBase     = 340
)

// MorphTag names the grammatical category a suffix transition produces.
type MorphTag int

const (
	A1sg MorphTag = agreementBase + iota // -m, +yIm
	A2sg                                 // -n, sIn
	A3sg                                 // unmarked
	A1pl                                 // -k, +yIz
	A2pl                                 // -nIz, sInIz, +yIn
	A3pl                                 // -lAr
)

const (
	Pnon MorphTag = possessionBase + iota // unmarked
	P1sg                                  // +Im
	P2sg                                  // +In
	P3sg                                  // +sI
	P1pl                                  // +ImIz
	P2pl                                  // +InIz
	P3pl                                  // -lArI
)

const (
	Nom MorphTag = caseBase + iota // unmarked
	Dat                            // +yA
	Acc                            // +yI
	Loc                            // -DA
	Abl                            // -DAn
	Gen                            // +nIn
	Ins                            // +ylA
	Equ                            // -CA
)

const (
	With    MorphTag = derivBase + iota // -lI
	Without                             // -sIz
	Ness                                // -lIk
	Agt                                 // -CI
	Become                              // -lAş
	Verbal                              // -lA
	Zero                                // adjective used as noun
)

const (
	Cop MorphTag = copBase // -DIr
)

const (
	Neg MorphTag = vnegBase // -mA
)

const (
	Past  MorphTag = vtenseBase + iota // -DI
	Narr                               // -mIş
	Prog1                              // -Iyor
	Fut                                // +yAcAk
	Aor                                // +Ar, +Ir, -z
	Cond                               // -sA
	Neces                              // -mAlI
	Imp                                // unmarked
)

const (
	Able     MorphTag = vderivBase + iota // +yAbil
	Almost                                // +yAyaz
	Inf1                                  // -mAk
	Inf2                                  // -mA
	PresPart                              // +yAn
)

var morphTagNames = map[MorphTag]string{
	A1sg: "A1sg",
	A2sg: "A2sg",
	A3sg: "A3sg",
	A1pl: "A1pl",
	A2pl: "A2pl",
	A3pl: "A3pl",

	Pnon: "Pnon",
	P1sg: "P1sg",
	P2sg: "P2sg",
	P3sg: "P3sg",
	P1pl: "P1pl",
	P2pl: "P2pl",
	P3pl: "P3pl",

	Nom: "Nom",
	Dat: "Dat",
	Acc: "Acc",
	Loc: "Loc",
	Abl: "Abl",
	Gen: "Gen",
	Ins: "Ins",
	Equ: "Equ",

	With:    "With",
	Without: "Without",
	Ness:    "Ness",
	Agt:     "Agt",
	Become:  "Become",
	Verbal:  "Verb",
	Zero:    "Zero",

	Cop: "Cop",

	Neg: "Neg",

	Past:  "Past",
	Narr:  "Narr",
	Prog1: "Prog1",
	Fut:   "Fut",
	Aor:   "Aor",
	Cond:  "Cond",
	Neces: "Neces",
	Imp:   "Imp",

	Able:     "Able",
	Almost:   "Almost",
	Inf1:     "Inf1",
	Inf2:     "Inf2",
	PresPart: "PresPart",
}

var morphTagFromName = func() map[string]MorphTag {
	m := make(map[string]MorphTag, len(morphTagNames))
	for t, n := range morphTagNames {
		m[n] = t
	}
	return m
}()

// String returns the name of the tag, e.g. "Dat".
func (t MorphTag) String() string {
	if name, ok := morphTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MorphTag(%d)", int(t))
}

// ParseMorphTag returns the tag with the given name.
func ParseMorphTag(s string) (MorphTag, error) {
	t, ok := morphTagFromName[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown morph tag %q", ErrInvalidInput, s)
	}
	return t, nil
}

// MarshalJSON encodes the morph tag as a JSON string (e.g. "Dat").
func (t MorphTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Dat") into a MorphTag.
func (t *MorphTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tag, err := ParseMorphTag(s)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}
