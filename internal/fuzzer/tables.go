package fuzzer

// keyboardLayout maps a character to the characters adjacent to it on a
// physical keyboard. Three layouts are modeled (QWERTY, QWERTZ, AZERTY)
// because Insertion and Replacement must consider all three to catch typos
// made on non-US keyboards. Encoded verbatim from the reference fuzzer.
type keyboardLayout map[byte]string

var qwerty = keyboardLayout{
	'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4",
	'6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
	'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6ygfr5",
	'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
	'a': "qwsz", 's': "edxzaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft",
	'h': "ujnbgy", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
	'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

var qwertz = keyboardLayout{
	'1': "2q", '2': "3wq1", '3': "4ew2", '4': "5re3", '5': "6tr4",
	'6': "7zt5", '7': "8uz6", '8': "9iu7", '9': "0oi8", '0': "po9",
	'q': "12wa", 'w': "3esaq2", 'e': "4rdsw3", 'r': "5tfde4", 't': "6zgfr5",
	'z': "7uhgt6", 'u': "8ijhz7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0",
	'a': "qwsy", 's': "edxyaw", 'd': "rfcxse", 'f': "tgvcdr", 'g': "zhbvft",
	'h': "ujnbgz", 'j': "ikmnhu", 'k': "olmji", 'l': "kop",
	'y': "asx", 'x': "ysdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

var azerty = keyboardLayout{
	'1': "2a", '2': "3za1", '3': "4ez2", '4': "5re3", '5': "6tr4",
	'6': "7yt5", '7': "8uy6", '8': "9iu7", '9': "0oi8", '0': "po9",
	'a': "2zq1", 'z': "3esqa2", 'e': "4rdsz3", 'r': "5tfde4", 't': "6ygfr5",
	'y': "7uhgt6", 'u': "8ijhy7", 'i': "9okju8", 'o': "0plki9", 'p': "lo0m",
	'q': "zswa", 's': "edxwqz", 'd': "rfcxse", 'f': "tgvcdr", 'g': "yhbvft",
	'h': "ujnbgy", 'j': "iknhu", 'k': "olji", 'l': "kopm", 'm': "lp",
	'w': "sxq", 'x': "wsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhj",
}

var keyboards = []keyboardLayout{qwerty, qwertz, azerty}

// homoglyphs maps an ASCII letter to visually similar Unicode confusables,
// encoded verbatim from the reference fuzzer's full table (not an
// abbreviated subset).
var homoglyphs = map[rune][]string{
	'a': {"à", "á", "â", "ã", "ä", "å", "ɑ", "ạ", "ǎ", "ă", "ȧ", "ą"},
	'b': {"d", "lb", "ʙ", "ɓ", "ḃ", "ḅ", "ḇ", "ƅ"},
	'c': {"e", "ƈ", "ċ", "ć", "ç", "č", "ĉ"},
	'd': {"b", "cl", "dl", "ɗ", "đ", "ď", "ɖ", "ḑ", "ḋ", "ḍ", "ḏ", "ḓ"},
	'e': {"c", "é", "è", "ê", "ë", "ē", "ĕ", "ě", "ė", "ẹ", "ę", "ȩ", "ɇ", "ḛ"},
	'f': {"ƒ", "ḟ"},
	'g': {"q", "ɢ", "ɡ", "ġ", "ğ", "ǵ", "ģ", "ĝ", "ǧ", "ǥ"},
	'h': {"lh", "ĥ", "ȟ", "ħ", "ɦ", "ḧ", "ḩ", "ⱨ", "ḣ", "ḥ", "ḫ", "ẖ"},
	'i': {"1", "l", "í", "ì", "ï", "ı", "ɩ", "ǐ", "ĭ", "ỉ", "ị", "ɨ", "ȋ", "ī"},
	'j': {"ʝ", "ɉ"},
	'k': {"lk", "ik", "lc", "ḳ", "ḵ", "ⱪ", "ķ"},
	'l': {"1", "i", "ɫ", "ł"},
	'm': {"n", "nn", "rn", "rr", "ṁ", "ṃ", "ᴍ", "ɱ", "ḿ"},
	'n': {"m", "r", "ń", "ṅ", "ṇ", "ṉ", "ñ", "ņ", "ǹ", "ň", "ꞑ"},
	'o': {"0", "ȯ", "ọ", "ỏ", "ơ", "ó", "ö"},
	'p': {"ƿ", "ƥ", "ṕ", "ṗ"},
	'q': {"g", "ʠ"},
	'r': {"ʀ", "ɼ", "ɽ", "ŕ", "ŗ", "ř", "ɍ", "ɾ", "ȓ", "ȑ", "ṙ", "ṛ", "ṟ"},
	's': {"ʂ", "ś", "ṣ", "ṡ", "ș", "ŝ", "š"},
	't': {"ţ", "ŧ", "ṫ", "ṭ", "ț", "ƫ"},
	'u': {"ᴜ", "ǔ", "ŭ", "ü", "ʉ", "ù", "ú", "û", "ũ", "ū", "ų", "ư", "ů", "ű", "ȕ", "ȗ", "ụ"},
	'v': {"ṿ", "ⱱ", "ᶌ", "ṽ", "ⱴ"},
	'w': {"vv", "ŵ", "ẁ", "ẃ", "ẅ", "ⱳ", "ẇ", "ẉ", "ẘ"},
	'y': {"ʏ", "ý", "ÿ", "ŷ", "ƴ", "ȳ", "ɏ", "ỿ", "ẏ", "ỵ"},
	'z': {"ʐ", "ż", "ź", "ᴢ", "ƶ", "ẓ", "ẕ", "ⱬ"},
}

// countryCompoundLabels are second-level labels under which a country-code
// TLD commonly delegates registrations (e.g. co.uk, com.au). Used as the
// fallback TLD-split heuristic when no public-suffix oracle segments the
// domain further than two labels.
var countryCompoundLabels = map[string]bool{
	"org": true, "com": true, "net": true, "gov": true, "edu": true,
	"co": true, "mil": true, "nom": true, "ac": true, "info": true, "biz": true,
}
