package rp210

import "github.com/smartjog/go-mxf/klv"

func mustUL(hexStr string) klv.UL {
	ul, err := klv.ULFromHex(hexStr)
	if err != nil {
		panic(err)
	}

	return ul
}

// baseEntries is a representative subset of the published SMPTE RP 210
// metadata dictionary: the structural Sets/Packs and the scalar fields
// that the dataset and avid packages decode by name. It is not the full
// ~1500-row table — Layer builds a dictionary with more rows on top of
// this one, and mxfparser.WithDictionary hands such a dictionary to Read.
var baseEntries = map[klv.UL]Entry{
	mustUL("060e2b34025301010d01010101012f00"): {Type: "StrongReference", Name: "preface", Definition: "Preface set instance"},
	mustUL("060e2b34025301010d01010101010900"): {Type: "Reference", Name: "filler", Definition: "KLV Fill item"},
	mustUL("060e2b34025301010d01010101010f00"): {Type: "StrongReferenceArray", Name: "structural_components", Definition: "Sequence"},
	mustUL("060e2b34025301010d01010101011100"): {Type: "StrongReference", Name: "source_clip", Definition: "SourceClip"},
	mustUL("060e2b34025301010d01010101011400"): {Type: "StrongReference", Name: "timecode_component", Definition: "TimecodeComponent"},
	mustUL("060e2b34025301010d01010101012300"): {Type: "StrongReferenceArray", Name: "essence_container_data", Definition: "EssenceContainerData"},
	mustUL("060e2b34025301010d01010101012800"): {Type: "StrongReference", Name: "cdci_essence_descriptor", Definition: "CDCIEssenceDescriptor"},
	mustUL("060e2b34025301010d01010101011800"): {Type: "StrongReference", Name: "content_storage", Definition: "ContentStorage"},
	mustUL("060e2b34025301010d01010101013000"): {Type: "StrongReferenceArray", Name: "identifications", Definition: "Identification"},
	mustUL("060e2b34025301010d01010101013600"): {Type: "StrongReferenceArray", Name: "packages", Definition: "MaterialPackage"},
	mustUL("060e2b34025301010d01010101013700"): {Type: "StrongReference", Name: "source_package", Definition: "SourcePackage"},
	mustUL("060e2b34025301010d01010101013b00"): {Type: "StrongReferenceArray", Name: "tracks", Definition: "TimelineTrack"},
	mustUL("060e2b34025301010d01010101013f00"): {Type: "StrongReferenceArray", Name: "tagged_value", Definition: "TaggedValue (Avid Dark)"},
	mustUL("060e2b34025301010d01010101014200"): {Type: "StrongReference", Name: "generic_sound_essence_descriptor", Definition: "GenericSoundEssenceDescriptor"},
	mustUL("060e2b34025301010d01010101014400"): {Type: "StrongReferenceArray", Name: "sub_descriptors", Definition: "MultipleDescriptor"},
	mustUL("060e2b34025301010d01010101014700"): {Type: "StrongReference", Name: "aes3_pcm_descriptor", Definition: "AES3PCMDescriptor"},
	mustUL("060e2b34025301010d01010101014800"): {Type: "StrongReference", Name: "wave_audio_descriptor", Definition: "WaveAudioDescriptor"},
	mustUL("060e2b34025301010d01010101015100"): {Type: "StrongReference", Name: "mpeg2_video_descriptor", Definition: "MPEG2VideoDescriptor"},

	// Preface scalar fields
	mustUL("060e2b34010101010102021001000000"): {Type: "TimeStamp", Name: "last_modified_date", Definition: "Preface.LastModifiedDate"},
	mustUL("060e2b34010101030103020100000000"): {Type: "VersionType", Name: "version", Definition: "Preface.Version"},
	mustUL("060e2b34010101010103020100000000"): {Type: "UInt32", Name: "object_model_version", Definition: "Preface.ObjectModelVersion"},
	mustUL("060e2b34010101010201010102030000"): {Type: "UL", Name: "operational_pattern", Definition: "Preface.OperationalPattern"},
	mustUL("060e2b34010101010201010102040000"): {Type: "Batch of UL", Name: "essence_containers", Definition: "Preface.EssenceContainers"},
	mustUL("060e2b34010101010201010102050000"): {Type: "Batch of UL", Name: "dm_schemes", Definition: "Preface.DMSchemes"},

	// Identification scalars
	mustUL("060e2b34010101010201010103070000"): {Type: "16 bit Unicode String", Name: "company_name", Definition: "Identification.CompanyName"},
	mustUL("060e2b34010101010201010103080000"): {Type: "16 bit Unicode String", Name: "product_name", Definition: "Identification.ProductName"},
	mustUL("060e2b34010101010201010103090000"): {Type: "ProductVersion", Name: "product_version", Definition: "Identification.ProductVersion"},
	mustUL("060e2b3401010101020101010300a000"): {Type: "16 bit Unicode String", Name: "version_string", Definition: "Identification.VersionString"},
	mustUL("060e2b3401010101020101010300a100"): {Type: "UUID", Name: "product_uid", Definition: "Identification.ProductUID"},
	mustUL("060e2b3401010101020101010300a200"): {Type: "TimeStamp", Name: "modification_date", Definition: "Identification.ModificationDate"},
	mustUL("060e2b3401010101020101010300a300"): {Type: "UUID", Name: "this_generation_uid", Definition: "Identification.ThisGenerationUID"},

	// Generic package / track
	mustUL("060e2b34010101010102021001010000"): {Type: "PackageID", Name: "package_uid", Definition: "GenericPackage.PackageUID"},
	mustUL("060e2b34010101010102021001020000"): {Type: "16 bit Unicode String", Name: "name", Definition: "GenericPackage.Name"},
	mustUL("060e2b34010101010102021001030000"): {Type: "StrongReferenceArray", Name: "tracks", Definition: "GenericPackage.Tracks"},
	mustUL("060e2b34010101010102021001040000"): {Type: "TrackID", Name: "track_id", Definition: "GenericTrack.TrackID"},
	mustUL("060e2b34010101010102021001050000"): {Type: "Rational", Name: "edit_rate", Definition: "Track.EditRate"},
	mustUL("060e2b34010101010102021001060000"): {Type: "Position", Name: "origin", Definition: "Track.Origin"},
	mustUL("060e2b34010101010102021001070000"): {Type: "StrongReference", Name: "sequence", Definition: "Track.Sequence"},

	// The one local tag every set is expected to carry: its own identity.
	mustUL("060e2b34010101010102021001000001"): {Type: "UUID", Name: "instance_uid", Definition: "InterchangeObject.InstanceUID"},
	mustUL("060e2b34010101010102021001000002"): {Type: "WeakReference", Name: "generation_uid", Definition: "InterchangeObject.GenerationUID"},
}

// extraEntries are synthetic local-scope entries, mostly kept under
// all-zero ULs for the private Primer Pack tags (`0001..0004`, `000f`,
// `0010`, `001b`) used by Avid but never declared in the published
// dictionary, plus one 060e2b34-prefixed UL of unknown format.
var extraEntries = map[klv.UL]Entry{
	mustUL("00000000000000000000000000000001"): {Type: "StrongReference", Name: "aaf_metadata", Definition: "Avid AAF Metadata Reference"},
	mustUL("00000000000000000000000000000002"): {Type: "StrongReference", Name: "preface", Definition: "Avid Preface Reference"},
	mustUL("00000000000000000000000000000003"): {Type: "StrongReferenceArray", Name: "composited_types", Definition: "Avid StrongReferenceArray to Composited Types"},
	mustUL("00000000000000000000000000000004"): {Type: "StrongReferenceArray", Name: "simple_types", Definition: "Avid StrongReferenceArray to Simple Types"},
	mustUL("00000000000000000000000000000010"): {Type: "Boolean", Name: "signedness", Definition: ""},
	mustUL("0000000000000000000000000000000f"): {Type: "UInt8", Name: "length_in_bytes", Definition: ""},
	mustUL("0000000000000000000000000000001b"): {Type: "Reference", Name: "unknown_data_1", Definition: ""},
	mustUL("060e2b34010101050e0b01030101010a"): {Type: "UInt16", Name: "smpte_uint16", Definition: "Unknown format 1"},
}

// avidEntries extend the base dictionary with ULs seen only in Avid
// exports, none of which appear in the published RP 210 table.
var avidEntries = map[klv.UL]Entry{
	mustUL("8b4ebaf0ca0940b554405d72bfbd4b0e"): {Type: "Int32", Name: "avid_int32_1", Definition: ""},
	mustUL("8bb3ad5a842b0585f6e59f10248e494c"): {Type: "Int16", Name: "avid_int16_2", Definition: ""},
	mustUL("93c0b44a156ed52a945df2faf4654771"): {Type: "Int16", Name: "avid_int16_3", Definition: ""},
	mustUL("a01c0004ac969f506095818347b111d4"): {Type: "StrongReferenceArray", Name: "avid_metadata_1", Definition: "AvidDef1"},
	mustUL("a01c0004ac969f506095818547b111d4"): {Type: "StrongReferenceArray", Name: "avid_metadata_2", Definition: "AvidDef2"},
	mustUL("a024006094eb75cbce2aca4d51ab11d3"): {Type: "Int32", Name: "avid_int32_4", Definition: ""},
	mustUL("a024006094eb75cbce2aca4f51ab11d3"): {Type: "Int32", Name: "avid_int32_5", Definition: ""},
	mustUL("a024006094eb75cbce2aca5051ab11d3"): {Type: "Int32", Name: "avid_int32_6", Definition: ""},
	mustUL("a029006094eb75cb9d15fca354c511d3"): {Type: "Int32", Name: "avid_int32_7", Definition: ""},
	mustUL("a9bac6e98e92018d36a2806248054b21"): {Type: "Int32", Name: "avid_int32_8", Definition: ""},
	mustUL("a573fa765aa6468a06e929b37d154fd7"): {Type: "Int16", Name: "avid_int16_9", Definition: ""},
	mustUL("a577a500581c9f050fbf8f904d984e06"): {Type: "Int8", Name: "avid_int8_10", Definition: ""},
	mustUL("b1f07750aad8875d7839ba85999b4d60"): {Type: "Int16", Name: "avid_int16_11", Definition: ""},
	mustUL("b94a62f973fe6063f3e9dc41bbec46bd"): {Type: "Int8", Name: "avid_int8_12", Definition: ""},
	mustUL("bf734ae52b16b9eaf8fd061dea7e46ba"): {Type: "Int16", Name: "avid_int16_13", Definition: ""},
	mustUL("82149f0b14ba0ce0473f46bf562e49b6"): {Type: "Int32", Name: "avid_int32_14", Definition: ""},
}
