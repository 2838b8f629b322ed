package morph

// Turkish morphotactics. State names end in _S for non-terminal states
// and _ST for states a word may end in.
//
// Templates use A (a/e), I (ı/i/u/ü), D (d/t), C (c/ç) and "+" for a
// buffer letter; lowercase letters are literal.

var defaultGraph = mustBuildGraph(DefaultMorphotactics())

func mustBuildGraph(b *GraphBuilder) *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGraph returns the built-in Turkish morphotactics graph. Graphs
// are immutable and safe to share.
func DefaultGraph() *Graph { return defaultGraph }

// DefaultMorphotactics returns a builder holding the Turkish suffix graph.
// Callers may extend it before calling Build.
func DefaultMorphotactics() *GraphBuilder {
	b := NewGraphBuilder()
	addNominal(b)
	addVerbal(b)
	addClosedClasses(b)
	return b
}

func addNominal(b *GraphBuilder) {
	b.State("noun_S", Noun, false).
		State("nA3sg_S", Noun, false).
		State("nA3pl_S", Noun, false).
		State("nPoss_S", Noun, false).
		State("nPoss3_S", Noun, false).
		State("nNom_ST", Noun, true).
		State("nCase_ST", Noun, true).
		State("nCop_ST", Noun, true).
		State("adj_ST", Adjective, true).
		State("pron_S", Pronoun, false).
		State("pronA3sg_S", Pronoun, false).
		State("num_S", Numeral, false)

	b.Start(Noun, "noun_S").
		Start(Adjective, "adj_ST").
		Start(Pronoun, "pron_S").
		Start(Numeral, "num_S")

	// Agreement.
	b.Add("noun_S", "nA3sg_S", "", A3sg)
	b.Add("noun_S", "nA3pl_S", "lAr", A3pl)
	b.Add("pron_S", "pronA3sg_S", "", A3sg)
	b.Add("pronA3sg_S", "nPoss_S", "", Pnon)
	b.Add("num_S", "nA3sg_S", "", A3sg)

	// Possession after singular.
	b.Add("nA3sg_S", "nPoss_S", "", Pnon)
	b.Add("nA3sg_S", "nPoss_S", "+Im", P1sg)
	b.Add("nA3sg_S", "nPoss_S", "+In", P2sg)
	b.Add("nA3sg_S", "nPoss3_S", "+sI", P3sg)
	b.Add("nA3sg_S", "nPoss_S", "+ImIz", P1pl)
	b.Add("nA3sg_S", "nPoss_S", "+InIz", P2pl)
	b.Add("nA3sg_S", "nPoss3_S", "lArI", P3pl)

	// Possession after plural: the plural ends in a consonant.
	b.Add("nA3pl_S", "nPoss_S", "", Pnon)
	b.Add("nA3pl_S", "nPoss_S", "Im", P1sg)
	b.Add("nA3pl_S", "nPoss_S", "In", P2sg)
	b.Add("nA3pl_S", "nPoss3_S", "I", P3sg)
	b.Add("nA3pl_S", "nPoss_S", "ImIz", P1pl)
	b.Add("nA3pl_S", "nPoss_S", "InIz", P2pl)
	b.Add("nA3pl_S", "nPoss3_S", "I", P3pl)

	// Case.
	b.Add("nPoss_S", "nNom_ST", "", Nom)
	b.Add("nPoss_S", "nCase_ST", "+yA", Dat)
	b.Add("nPoss_S", "nCase_ST", "+yI", Acc)
	b.Add("nPoss_S", "nCase_ST", "DA", Loc)
	b.Add("nPoss_S", "nCase_ST", "DAn", Abl)
	b.Add("nPoss_S", "nCase_ST", "+nIn", Gen)
	b.Add("nPoss_S", "nCase_ST", "+ylA", Ins)
	b.Add("nPoss_S", "nCase_ST", "CA", Equ)

	// Case after third person possessive takes a pronominal n.
	b.Add("nPoss3_S", "nNom_ST", "", Nom)
	b.Add("nPoss3_S", "nCase_ST", "nA", Dat)
	b.Add("nPoss3_S", "nCase_ST", "nI", Acc)
	b.Add("nPoss3_S", "nCase_ST", "ndA", Loc)
	b.Add("nPoss3_S", "nCase_ST", "ndAn", Abl)
	b.Add("nPoss3_S", "nCase_ST", "nIn", Gen)
	b.Add("nPoss3_S", "nCase_ST", "+ylA", Ins)
	b.Add("nPoss3_S", "nCase_ST", "ncA", Equ)

	b.Add("nNom_ST", "nCop_ST", "DIr", Cop)

	// Nominal derivations.
	b.Add("nA3sg_S", "adj_ST", "lI", With).Derivation()
	b.Add("nA3sg_S", "adj_ST", "sIz", Without).Derivation()
	b.Add("nA3sg_S", "noun_S", "lIk", Ness).Derivation()
	b.Add("nA3sg_S", "noun_S", "CI", Agt).Derivation()
	b.Add("nA3sg_S", "verb_S", "lAş", Become).Sets(AoristI)
	b.Add("nA3sg_S", "verb_S", "lA", Verbal).Sets(AoristI)

	// Adjectives are used as nouns without a suffix.
	b.Add("adj_ST", "noun_S", "", Zero).Derivation()
}

func addVerbal(b *GraphBuilder) {
	b.State("verb_S", Verb, false).
		State("vNeg_S", Verb, false).
		State("vNegProg_S", Verb, false).
		State("vPast_S", Verb, false).
		State("vNarr_S", Verb, false).
		State("vProg_S", Verb, false).
		State("vFut_S", Verb, false).
		State("vFutV_S", Verb, false).
		State("vAor_S", Verb, false).
		State("vAorNeg_S", Verb, false).
		State("vAorNeg1_S", Verb, false).
		State("vCond_S", Verb, false).
		State("vNeces_S", Verb, false).
		State("vImp_S", Verb, false).
		State("vPers_ST", Verb, true).
		State("nInf_ST", Noun, true)

	b.Start(Verb, "verb_S")

	// Negation. The short form only precedes the progressive: gel-m-iyor.
	b.Add("verb_S", "vNeg_S", "mA", Neg)
	b.Add("verb_S", "vNegProg_S", "m", Neg)
	b.Add("vNegProg_S", "vProg_S", "Iyor", Prog1)

	// Tense, aspect and mood, on the positive and negative stem alike.
	for _, from := range []string{"verb_S", "vNeg_S"} {
		b.Add(from, "vPast_S", "DI", Past)
		b.Add(from, "vNarr_S", "mIş", Narr)
		b.Add(from, "vFut_S", "+yAcAk", Fut)
		b.Add(from, "vFutV_S", "+yAcAğ", Fut)
		b.Add(from, "vCond_S", "sA", Cond)
		b.Add(from, "vNeces_S", "mAlI", Neces)
		b.Add(from, "vImp_S", "", Imp)
	}
	b.Add("verb_S", "vProg_S", "Iyor", Prog1)
	b.Add("verb_S", "vAor_S", "+Ar", Aor).Require(AoristA)
	b.Add("verb_S", "vAor_S", "+Ir", Aor).Require(AoristI)
	b.Add("vNeg_S", "vAorNeg_S", "z", Aor)
	b.Add("vNeg_S", "vAorNeg1_S", "", Aor)

	// Person agreement, first paradigm (past, conditional).
	for _, from := range []string{"vPast_S", "vCond_S"} {
		b.Add(from, "vPers_ST", "m", A1sg)
		b.Add(from, "vPers_ST", "n", A2sg)
		b.Add(from, "vPers_ST", "", A3sg)
		b.Add(from, "vPers_ST", "k", A1pl)
		b.Add(from, "vPers_ST", "nIz", A2pl)
		b.Add(from, "vPers_ST", "lAr", A3pl)
	}

	// Person agreement, second paradigm.
	for _, from := range []string{"vNarr_S", "vProg_S", "vAor_S", "vNeces_S"} {
		b.Add(from, "vPers_ST", "+yIm", A1sg)
		b.Add(from, "vPers_ST", "sIn", A2sg)
		b.Add(from, "vPers_ST", "", A3sg)
		b.Add(from, "vPers_ST", "+yIz", A1pl)
		b.Add(from, "vPers_ST", "sInIz", A2pl)
		b.Add(from, "vPers_ST", "lAr", A3pl)
	}
	for _, from := range []string{"vFut_S", "vAorNeg_S"} {
		b.Add(from, "vPers_ST", "sIn", A2sg)
		b.Add(from, "vPers_ST", "", A3sg)
		b.Add(from, "vPers_ST", "sInIz", A2pl)
		b.Add(from, "vPers_ST", "lAr", A3pl)
	}
	b.Add("vFutV_S", "vPers_ST", "Im", A1sg)
	b.Add("vFutV_S", "vPers_ST", "Iz", A1pl)
	b.Add("vAorNeg1_S", "vPers_ST", "m", A1sg)
	b.Add("vAorNeg1_S", "vPers_ST", "+yIz", A1pl)

	b.Add("vImp_S", "vPers_ST", "", A2sg)
	b.Add("vImp_S", "vPers_ST", "+yIn", A2pl)
	b.Add("vImp_S", "vPers_ST", "sIn", A3sg)

	// Verbal derivations.
	b.Add("verb_S", "verb_S", "+yAbil", Able).Sets(AoristI)
	b.Add("verb_S", "verb_S", "+yAyaz", Almost).Sets(AoristA)
	b.Add("verb_S", "nInf_ST", "mAk", Inf1).Derivation()
	b.Add("verb_S", "noun_S", "mA", Inf2).Derivation()
	b.Add("verb_S", "adj_ST", "+yAn", PresPart).Derivation()
}

// addClosedClasses gives every uninflected part of speech a terminal
// start state.
func addClosedClasses(b *GraphBuilder) {
	closed := []struct {
		name string
		pos  PrimaryPos
	}{
		{"adv_ST", Adverb},
		{"conj_ST", Conjunction},
		{"interj_ST", Interjection},
		{"det_ST", Determiner},
		{"postp_ST", PostPositive},
		{"ques_ST", Question},
		{"dup_ST", Duplicator},
		{"punc_ST", Punctuation},
	}
	for _, c := range closed {
		b.State(c.name, c.pos, true).Start(c.pos, c.name)
	}
}
