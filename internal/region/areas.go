package region

// areaTable maps fine-grained area names (lowercase) to their
// administrative region. Indexed at the finest granularity available;
// coarser input is handled by the resolver's containment tiers.
var areaTable = map[string]string{
	// Colombo district
	"colombo":          "Colombo",
	"colombo 1":        "Colombo",
	"colombo 2":        "Colombo",
	"colombo 3":        "Colombo",
	"colombo 4":        "Colombo",
	"colombo 5":        "Colombo",
	"colombo 6":        "Colombo",
	"colombo 7":        "Colombo",
	"colombo 8":        "Colombo",
	"colombo 9":        "Colombo",
	"colombo 10":       "Colombo",
	"colombo 11":       "Colombo",
	"colombo 12":       "Colombo",
	"colombo 13":       "Colombo",
	"colombo 14":       "Colombo",
	"colombo 15":       "Colombo",
	"fort":             "Colombo",
	"pettah":           "Colombo",
	"kollupitiya":      "Colombo",
	"bambalapitiya":    "Colombo",
	"havelock town":    "Colombo",
	"wellawatte":       "Colombo",
	"cinnamon gardens": "Colombo",
	"borella":          "Colombo",
	"dematagoda":       "Colombo",
	"maradana":         "Colombo",
	"mutwal":           "Colombo",
	"dehiwala":         "Colombo",
	"mount lavinia":    "Colombo",
	"mt lavinia":       "Colombo",
	"ratmalana":        "Colombo",
	"moratuwa":         "Colombo",
	"katubedda":        "Colombo",
	"piliyandala":      "Colombo",
	"kesbewa":          "Colombo",
	"boralesgamuwa":    "Colombo",
	"maharagama":       "Colombo",
	"pannipitiya":      "Colombo",
	"kottawa":          "Colombo",
	"homagama":         "Colombo",
	"meegoda":          "Colombo",
	"padukka":          "Colombo",
	"hanwella":         "Colombo",
	"avissawella":      "Colombo",
	"kaduwela":         "Colombo",
	"malabe":           "Colombo",
	"battaramulla":     "Colombo",
	"thalawathugoda":   "Colombo",
	"pelawatta":        "Colombo",
	"sri jayawardenepura": "Colombo",
	"kotte":            "Colombo",
	"rajagiriya":       "Colombo",
	"nugegoda":         "Colombo",
	"kohuwala":         "Colombo",
	"nawala":           "Colombo",
	"kirulapone":       "Colombo",
	"athurugiriya":     "Colombo",
	"kotikawatta":      "Colombo",
	"angoda":           "Colombo",
	"kolonnawa":        "Colombo",
	"wellampitiya":     "Colombo",
	"mulleriyawa":      "Colombo",
	"godagama":         "Colombo",
	"polgasowita":      "Colombo",
	"kahathuduwa":      "Colombo",
	"gonapola":         "Colombo",
	"madapatha":        "Colombo",
	"bokundara":        "Colombo",

	// Gampaha district
	"gampaha":       "Gampaha",
	"negombo":       "Gampaha",
	"katunayake":    "Gampaha",
	"seeduwa":       "Gampaha",
	"liyanagemulla": "Gampaha",
	"ja-ela":        "Gampaha",
	"ja ela":        "Gampaha",
	"ekala":         "Gampaha",
	"kandana":       "Gampaha",
	"wattala":       "Gampaha",
	"hendala":       "Gampaha",
	"mabola":        "Gampaha",
	"peliyagoda":    "Gampaha",
	"kelaniya":      "Gampaha",
	"kiribathgoda":  "Gampaha",
	"makola":        "Gampaha",
	"kadawatha":     "Gampaha",
	"ragama":        "Gampaha",
	"ganemulla":     "Gampaha",
	"yakkala":       "Gampaha",
	"miriswatta":    "Gampaha",
	"veyangoda":     "Gampaha",
	"nittambuwa":    "Gampaha",
	"mirigama":      "Gampaha",
	"divulapitiya":  "Gampaha",
	"minuwangoda":   "Gampaha",
	"kotugoda":      "Gampaha",
	"udugampola":    "Gampaha",
	"delgoda":       "Gampaha",
	"biyagama":      "Gampaha",
	"malwana":       "Gampaha",
	"dompe":         "Gampaha",
	"pugoda":        "Gampaha",
	"kirindiwela":   "Gampaha",
	"weliweriya":    "Gampaha",
	"imbulgoda":     "Gampaha",
	"belummahara":   "Gampaha",
	"mudungoda":     "Gampaha",
	"pamunugama":    "Gampaha",
	"uswetakeiyawa": "Gampaha",
	"kochchikade":   "Gampaha",
	"waikkala":      "Gampaha",
	"dankotuwa":     "Gampaha",

	// Kalutara district
	"kalutara":      "Kalutara",
	"kalutara north": "Kalutara",
	"kalutara south": "Kalutara",
	"panadura":      "Kalutara",
	"keselwatta":    "Kalutara",
	"wadduwa":       "Kalutara",
	"waskaduwa":     "Kalutara",
	"bandaragama":   "Kalutara",
	"raigama":       "Kalutara",
	"horana":        "Kalutara",
	"ingiriya":      "Kalutara",
	"bulathsinhala": "Kalutara",
	"matugama":      "Kalutara",
	"dharga town":   "Kalutara",
	"aluthgama":     "Kalutara",
	"beruwala":      "Kalutara",
	"payagala":      "Kalutara",
	"maggona":       "Kalutara",
	"dodangoda":     "Kalutara",
	"millaniya":     "Kalutara",
	"agalawatta":    "Kalutara",
	"baduraliya":    "Kalutara",
	"walallawita":   "Kalutara",
	"pokunuwita":    "Kalutara",

	// Kandy district
	"kandy":        "Kandy",
	"peradeniya":   "Kandy",
	"katugastota":  "Kandy",
	"akurana":      "Kandy",
	"kundasale":    "Kandy",
	"digana":       "Kandy",
	"pilimathalawa": "Kandy",
	"kadugannawa":  "Kandy",
	"gampola":      "Kandy",
	"nawalapitiya": "Kandy",
	"wattegama":    "Kandy",
	"gelioya":      "Kandy",
	"ampitiya":     "Kandy",
	"katukele":     "Kandy",
	"tennekumbura": "Kandy",

	// Galle district
	"galle":       "Galle",
	"unawatuna":   "Galle",
	"hikkaduwa":   "Galle",
	"ambalangoda": "Galle",
	"elpitiya":    "Galle",
	"bentota":     "Galle",
	"balapitiya":  "Galle",
	"ahungalla":   "Galle",
	"karapitiya":  "Galle",
	"baddegama":   "Galle",
	"wakwella":    "Galle",
	"habaraduwa":  "Galle",
	"koggala":     "Galle",
	"ahangama":    "Galle",

	// Matara district
	"matara":     "Matara",
	"weligama":   "Matara",
	"mirissa":    "Matara",
	"kamburugamuwa": "Matara",
	"akuressa":   "Matara",
	"hakmana":    "Matara",
	"dikwella":   "Matara",
	"devinuwara": "Matara",
	"kekanadura": "Matara",

	// Hambantota district
	"hambantota": "Hambantota",
	"tangalle":   "Hambantota",
	"beliatta":   "Hambantota",
	"ambalantota": "Hambantota",
	"tissamaharama": "Hambantota",
	"weeraketiya": "Hambantota",

	// Kurunegala district
	"kurunegala": "Kurunegala",
	"kuliyapitiya": "Kurunegala",
	"narammala":  "Kurunegala",
	"wariyapola": "Kurunegala",
	"pannala":    "Kurunegala",
	"melsiripura": "Kurunegala",
	"mawathagama": "Kurunegala",
	"polgahawela": "Kurunegala",
	"alawwa":     "Kurunegala",
	"giriulla":   "Kurunegala",

	// Puttalam district
	"puttalam":  "Puttalam",
	"chilaw":    "Puttalam",
	"wennappuwa": "Puttalam",
	"marawila":  "Puttalam",
	"nattandiya": "Puttalam",
	"madampe":   "Puttalam",
	"anamaduwa": "Puttalam",

	// Anuradhapura district
	"anuradhapura": "Anuradhapura",
	"kekirawa":     "Anuradhapura",
	"medawachchiya": "Anuradhapura",
	"thambuttegama": "Anuradhapura",
	"eppawala":     "Anuradhapura",

	// Polonnaruwa district
	"polonnaruwa": "Polonnaruwa",
	"kaduruwela":  "Polonnaruwa",
	"hingurakgoda": "Polonnaruwa",
	"medirigiriya": "Polonnaruwa",

	// Matale district
	"matale":    "Matale",
	"dambulla":  "Matale",
	"sigiriya":  "Matale",
	"galewela":  "Matale",
	"ukuwela":   "Matale",
	"rattota":   "Matale",

	// Nuwara Eliya district
	"nuwara eliya": "Nuwara Eliya",
	"hatton":       "Nuwara Eliya",
	"talawakele":   "Nuwara Eliya",
	"ginigathena":  "Nuwara Eliya",
	"ragala":       "Nuwara Eliya",

	// Ratnapura district
	"ratnapura":  "Ratnapura",
	"embilipitiya": "Ratnapura",
	"balangoda":  "Ratnapura",
	"pelmadulla": "Ratnapura",
	"kuruwita":   "Ratnapura",
	"eheliyagoda": "Ratnapura",
	"kahawatta":  "Ratnapura",

	// Kegalle district
	"kegalle":    "Kegalle",
	"mawanella":  "Kegalle",
	"warakapola": "Kegalle",
	"rambukkana": "Kegalle",
	"ruwanwella": "Kegalle",
	"dehiowita":  "Kegalle",
	"deraniyagala": "Kegalle",
	"kitulgala":  "Kegalle",

	// Badulla district
	"badulla":     "Badulla",
	"bandarawela": "Badulla",
	"ella":        "Badulla",
	"haputale":    "Badulla",
	"welimada":    "Badulla",
	"mahiyanganaya": "Badulla",
	"passara":     "Badulla",
	"diyatalawa":  "Badulla",

	// Monaragala district
	"monaragala": "Monaragala",
	"wellawaya":  "Monaragala",
	"bibile":     "Monaragala",
	"kataragama": "Monaragala",
	"buttala":    "Monaragala",

	// Jaffna district
	"jaffna":      "Jaffna",
	"nallur":      "Jaffna",
	"chavakachcheri": "Jaffna",
	"point pedro": "Jaffna",
	"kopay":       "Jaffna",
	"chunnakam":   "Jaffna",

	// Kilinochchi / Mullaitivu / Mannar / Vavuniya
	"kilinochchi": "Kilinochchi",
	"mullaitivu":  "Mullaitivu",
	"mannar":      "Mannar",
	"vavuniya":    "Vavuniya",

	// Trincomalee district
	"trincomalee": "Trincomalee",
	"kinniya":     "Trincomalee",
	"nilaveli":    "Trincomalee",
	"kantale":     "Trincomalee",

	// Batticaloa district
	"batticaloa":  "Batticaloa",
	"kattankudy":  "Batticaloa",
	"eravur":      "Batticaloa",
	"valaichchenai": "Batticaloa",
	"kalkudah":    "Batticaloa",

	// Ampara district
	"ampara":     "Ampara",
	"kalmunai":   "Ampara",
	"akkaraipattu": "Ampara",
	"sammanthurai": "Ampara",
	"pottuvil":   "Ampara",
	"arugam bay": "Ampara",
}

// districtFallback provides a last-resort match when the area table is
// unavailable or produced nothing. Ordered so scans are deterministic.
var districtFallback = []struct {
	region string
	areas  []string
}{
	{"Colombo", []string{
		"colombo", "dehiwala", "moratuwa", "nugegoda", "maharagama",
		"kottawa", "homagama", "piliyandala", "kaduwela", "malabe",
		"battaramulla", "rajagiriya", "kotte", "mount lavinia",
	}},
	{"Gampaha", []string{
		"gampaha", "negombo", "wattala", "ja-ela", "kadawatha",
		"kiribathgoda", "kelaniya", "ragama", "minuwangoda", "nittambuwa",
	}},
	{"Kalutara", []string{
		"kalutara", "panadura", "horana", "wadduwa", "bandaragama",
		"aluthgama", "beruwala", "matugama",
	}},
}
