package harmony

// Template tables for the two mode families. Degrees are semitone offsets
// from the tonic. The dominant slot (degree 7) carries the same "7" quality
// in both tables: a dominant sonority resolving to the tonic is
// mode-invariant, so the two contexts share that template.

var templatesMajor = []Template{
	{Degree: 0, Variants: []Variant{
		variant("maj", "I", "tonic", true, nil),
		variant("maj6", "I6", "tonic", true, req(FeatureSixthChords), FeatureSixthChords),
		variant("majadd9", "Iadd9", "tonic", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("maj6add9", "I6add9", "tonic", true, req(FeatureSixthChords, FeatureAddedTones), FeatureSixthChords, FeatureAddedTones),
		variant("maj7", "Imaj7", "tonic", true, nil, FeatureExtended),
		variant("maj9", "Imaj9", "tonic", true, nil, FeatureExtended),
		variant("maj13", "Imaj13", "tonic", true, nil, FeatureExtended),
		variant("maj7#11", "Imaj7#11", "tonic", false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
		variant("power", "I5", "tonic", true, req(FeaturePowerDyads), FeaturePowerDyads),
	}},
	{Degree: 2, Variants: []Variant{
		variant("min", "ii", "predominant", true, nil),
		variant("min7", "ii7", "predominant", true, nil),
		variant("min9", "ii9", "predominant", true, nil, FeatureExtended),
		variant("min11", "ii11", "predominant", true, nil, FeatureExtended),
		variant("min13", "ii13", "predominant", true, nil, FeatureExtended),
	}},
	{Degree: 4, Variants: []Variant{
		variant("min", "iii", TagTonicProlongation, true, nil),
		variant("min7", "iii7", TagTonicProlongation, true, nil),
		variant("min9", "iii9", TagTonicProlongation, false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
	}},
	{Degree: 5, Variants: []Variant{
		variant("maj", "IV", "predominant", true, nil),
		variant("maj6", "IV6", "predominant", true, req(FeatureSixthChords), FeatureSixthChords),
		variant("majadd9", "IVadd9", "predominant", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("maj6add9", "IV6add9", "predominant", true, req(FeatureSixthChords, FeatureAddedTones), FeatureSixthChords, FeatureAddedTones),
		variant("sus2", "IVsus2", "predominant", true, req(FeatureSuspended), FeatureSuspended, TagModalMix),
		variant("sus4", "IVsus4", "predominant", true, req(FeatureSuspended), FeatureSuspended),
		variant("maj7", "IVmaj7", "predominant", true, nil, FeatureExtended),
		variant("maj9", "IVmaj9", "predominant", true, nil, FeatureExtended),
		variant("maj7#11", "IVmaj7#11", "predominant", false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
		variant("maj9#11", "IVmaj9#11", "predominant", false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
	}},
	{Degree: 7, Variants: []Variant{
		variant("maj", "V", "dominant", true, nil),
		variant("7", "V7", "dominant", true, nil),
		variant("7sus4", "V7sus4", "dominant", true, req(FeatureSuspended), FeatureSuspended),
		variant("9", "V9", "dominant", true, nil, FeatureExtended),
		variant("11", "V11", "dominant", true, nil, FeatureExtended, TagAvoid3Or11),
		variant("13", "V13", "dominant", true, nil, FeatureExtended, TagOmit11),
		variant("7b5", "V7b5", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant),
		variant("7#5", "V7#5", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant),
		variant("7b9", "V7b9", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant),
		variant("7#9", "V7#9", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant),
		variant("7#11", "V7#11", "dominant", false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
		variant("9b5", "V9b5", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant, FeatureExtended),
		variant("9#5", "V9#5", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant, FeatureExtended),
		variant("7alt", "Valt", "dominant", false, req(FeatureAlteredDominant), FeatureAlteredDominant),
	}},
	{Degree: 9, Variants: []Variant{
		variant("min", "vi", "tonic", true, nil),
		variant("min7", "vi7", "tonic", true, nil),
		variant("minadd9", "viadd9", "tonic", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("min9", "vi9", "tonic", true, nil, FeatureExtended),
		variant("min11", "vi11", "tonic", true, nil, FeatureExtended),
		variant("min6", "vi6", "tonic", false, req(FeatureLydianExtensions), FeatureSixthChords, FeatureLydianExtensions),
		variant("min13", "vi13", "tonic", false, req(FeatureLydianExtensions), FeatureLydianExtensions, FeatureExtended),
	}},
	{Degree: 11, Variants: []Variant{
		variant("dim", "viidim", "dominant", true, nil),
		variant("min7b5", "viiø7", "dominant", true, nil),
		variant("dim7", "viidim7", "dominant", false, req(FeatureLeadingTone), FeatureLeadingTone),
	}},
}

var templatesMinor = []Template{
	{Degree: 0, Variants: []Variant{
		variant("min", "i", "tonic", true, nil),
		variant("minadd9", "iadd9", "tonic", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("min6", "i6", "tonic", false, req(FeatureRaisedSixth), FeatureSixthChords, FeatureRaisedSixth, TagMelodicMinor),
		variant("min6add9", "i6add9", "tonic", false, req(FeatureRaisedSixth, FeatureAddedTones), FeatureSixthChords, FeatureAddedTones, FeatureRaisedSixth, TagMelodicMinor),
		variant("min7", "i7", "tonic", true, nil),
		variant("min9", "i9", "tonic", true, nil, FeatureExtended, TagScaleFormDependent),
		variant("min11", "i11", "tonic", true, nil, FeatureExtended, TagScaleFormDependent),
		variant("min13", "i13", "tonic", false, req(FeatureRaisedSixth), FeatureRaisedSixth, FeatureExtended, TagMelodicMinor),
		variant("minmaj7", "imaj7", "tonic", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
		variant("power", "i5", "tonic", true, req(FeaturePowerDyads), FeaturePowerDyads),
	}},
	{Degree: 2, Variants: []Variant{
		variant("dim", "iidim", "predominant", true, nil),
		variant("min7b5", "iiø7", "predominant", true, nil),
		variant("dim7", "iidim7", "predominant", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
	}},
	{Degree: 3, Variants: []Variant{
		variant("maj", "bIII", "tonic", true, nil),
		variant("majadd9", "bIIIadd9", "tonic", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("maj6", "bIII6", "tonic", true, req(FeatureSixthChords), FeatureSixthChords),
		variant("maj7", "bIIImaj7", "tonic", true, nil, FeatureExtended),
		variant("maj9", "bIIImaj9", "tonic", true, req(FeatureAddedTones), FeatureExtended, FeatureAddedTones),
	}},
	{Degree: 5, Variants: []Variant{
		variant("min", "iv", "predominant", true, nil),
		variant("minadd9", "ivadd9", "predominant", true, req(FeatureAddedTones), FeatureAddedTones, TagMelodicMinor),
		variant("min6", "iv6", "predominant", true, req(FeatureSixthChords), FeatureSixthChords, TagModal),
		variant("min7", "iv7", "predominant", true, nil),
		variant("min9", "iv9", "predominant", true, nil, FeatureExtended, TagScaleFormDependent),
		variant("min11", "iv11", "predominant", true, nil, FeatureExtended, TagScaleFormDependent),
		variant("min13", "iv13", "predominant", true, nil, FeatureExtended, TagScaleFormDependent),
	}},
	{Degree: 7, Variants: []Variant{
		variant("min", "v", "dominant", true, nil, TagModal),
		variant("min7", "v7", "dominant", true, nil, TagModal),
		variant("7", "V7", "dominant", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
		variant("9", "V9", "dominant", false, req(FeatureLeadingTone, FeatureRaisedSixth), FeatureLeadingTone, FeatureRaisedSixth, FeatureExtended, TagHarmonicMinor, TagMelodicMinor),
		variant("11", "V11", "dominant", false, req(FeatureLeadingTone, FeatureRaisedSixth), FeatureLeadingTone, FeatureRaisedSixth, FeatureExtended, TagHarmonicMinor, TagMelodicMinor),
		variant("13", "V13", "dominant", false, req(FeatureLeadingTone, FeatureRaisedSixth), FeatureLeadingTone, FeatureRaisedSixth, FeatureExtended, TagHarmonicMinor, TagMelodicMinor),
		variant("7b9", "V7b9", "dominant", false, req(FeatureAlteredDominant, FeatureLeadingTone), FeatureAlteredDominant, FeatureLeadingTone, TagHarmonicMinor),
		variant("7#9", "V7#9", "dominant", false, req(FeatureAlteredDominant, FeatureLeadingTone), FeatureAlteredDominant, FeatureLeadingTone, TagHarmonicMinor),
		variant("7alt", "Valt", "dominant", false, req(FeatureAlteredDominant, FeatureLeadingTone), FeatureAlteredDominant, FeatureLeadingTone, TagHarmonicMinor),
	}},
	{Degree: 8, Variants: []Variant{
		variant("maj", "bVI", "predominant", true, nil),
		variant("majadd9", "bVIadd9", "predominant", true, req(FeatureAddedTones), FeatureAddedTones),
		variant("maj6", "bVI6", "predominant", true, req(FeatureSixthChords), FeatureSixthChords),
		variant("maj7", "bVImaj7", "predominant", true, nil, FeatureExtended),
		variant("maj9", "bVImaj9", "predominant", true, req(FeatureAddedTones), FeatureExtended, FeatureAddedTones),
	}},
	{Degree: 10, Variants: []Variant{
		variant("maj", "bVII", "dominant", false, req(FeatureParallelMajor), FeatureParallelMajor, TagSubtonic),
		variant("majadd9", "bVIIadd9", "dominant", false, req(FeatureAddedTones), FeatureAddedTones, FeatureParallelMajor, TagSubtonic),
		variant("7sus4", "bVII7sus4", "dominant", false, req(FeatureSuspended), FeatureSuspended, FeatureParallelMajor, TagSubtonic),
		variant("7", "bVII7", "dominant", false, req(FeatureParallelMajor), FeatureParallelMajor, TagSubtonic),
		variant("9", "bVII9", "dominant", false, req(FeatureParallelMajor), FeatureExtended, FeatureParallelMajor, TagSubtonic),
		variant("13", "bVII13", "dominant", false, req(FeatureParallelMajor), FeatureExtended, FeatureParallelMajor, TagSubtonic),
	}},
	{Degree: 11, Variants: []Variant{
		variant("dim", "viidim", "dominant", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
		variant("min7b5", "viiø7", "dominant", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
		variant("dim7", "viidim7", "dominant", false, req(FeatureLeadingTone), FeatureLeadingTone, TagHarmonicMinor),
	}},
}

// TemplatesFor returns the template table for the mode family.
func TemplatesFor(mode Mode) []Template {
	if mode == ModeMinor {
		return templatesMinor
	}
	return templatesMajor
}
