package pipeline

import "github.com/sscu-budapest/electiondata/internal/util"

// Ordered rewrite tables reconciling free-text labels that vary by election
// year and form version. These are versioned config artifacts: when a run
// fails on an unseen layout, the fix is a new rule here, not code.

// VarRules canonicalizes scraped variable (column) labels.
var VarRules = []util.Rule{
	{Old: "  ", New: " "},
	{Old: "Sorszám", New: "index"},
	{Old: "szavazó lapok", New: "szavazólapok"},
	{Old: "szavazatok", New: "szavazólapok"},
	{Old: "választó polgár", New: "választópolgár"},
	{Old: "szavazó választópolgárok", New: "szavazók"},
	{Old: "/hiány:", New: "/ hiányzó:"},
	{Old: "Eltérés a megjelentek számától (többlet:+ / hiányzó:-)", New: "Eltérés a szavazóként megjelentek számától (többlet: + / hiányzó: -)"},
	{Old: "szavazó-helyiségben", New: "szavazóhelyiségben"},
	{Old: "Kapott érvényes szavazat", New: "Kapottérvényesszavazat"},
	{Old: "névjegyzékben szereplő választópolgárok száma", New: "névjegyzékben szereplők száma"},
	{Old: "A névjegyzékben lévő választópolgárok száma", New: "A névjegyzékben szereplők száma összesen"},
}

// OrgRules canonicalizes nominating-organization names. Collisions after
// rewriting are intentional: different historical spellings of the same
// organization must merge.
var OrgRules = []util.Rule{
	{Old: "  ", New: " "},
	{Old: "MAGYAR DEMOKRATA FÓRUM", New: "MDF"},
	{Old: "KERESZTÉNYDEMOKRATA NÉPPÁRT", New: "KDNP"},
	{Old: "MAGYAR IGAZSÁG ÉS ÉLET PÁRTJA", New: "MIÉP"},
	{Old: "MAGYAR IGAZSÁG ÉS ÉLET PÁRJA", New: "MIÉP"},
	{Old: "FÜGGETLEN KISGAZDAPÁRT", New: "FKGP"},
	{Old: "FÜGG. KISGAZDA FÖLDM. POLG. P.", New: "FKGP"},
	{Old: "FÜGG.KISGAZDA FÖLDM. POLG. P.", New: "FKGP"},
	{Old: "FIATAL DEMOKRATÁK SZÖVETSÉGE", New: "FIDESZ"},
	{Old: "MO.-I SZOCIÁLDEMOKRATA PÁRT", New: "MSZDP"},
	{Old: "SZABAD DEMOKRATÁK SZÖVETSÉGE", New: "SZDSZ"},
	{Old: "FIDESZ MDF", New: "FIDESZ-MDF"},
	{Old: "MDF-FIDESZ", New: "FIDESZ-MDF"},
	{Old: "MAGYAR SZOCIALISTA PÁRT", New: "MSZP"},
	{Old: "MAGYAR SZOCIALISTA MUNKÁSPÁRT", New: "MSZMP"},
	{Old: "FÜGGETLEN JELÖLT", New: "FÜGGETLEN"},
	{Old: "HAZAFIAS VÁL.KOAL.", New: "HAZAFIAS VÁLASZTÁSI KOALÍCIÓ"},
	{Old: "AGRÁRSZÖV.", New: "AGRÁRSZÖVETSÉG"},
	{Old: "MO.-I SZÖVETKEZETI AGRÁRPÁRT", New: "MO. SZÖVETKEZETI AGRÁRPÁRT "},
	{Old: "SZ-SZ-B MEGYÉÉRT", New: "SZSZB MEGYÉÉRT"},
	{Old: "ÚJ-BAL", New: "ÚJ BAL"},
	{Old: "TORGYÁN-KISGAZDA", New: "TORGYÁN KISGAZDA"},
	{Old: "FÖLDI-ÉLET-PÁRTJA", New: "FÖLDI ÉLET PÁRTJA"},
	{Old: "KISGAZDAPÁRT-MIÉP", New: "FKGP-MIÉP"},
	{Old: "PÁRBESZÉD", New: "PM"},
	{Old: "CIVIL MOZGALOM", New: "CM"},
	{Old: "FÜGGETLEN MAGYAR DEM. PÁRT", New: "FÜGGETL. MAGYAR DEMOKRATA PÁRT"},
	{Old: "M NY P", New: "M.NY.P."},
	{Old: "KOALICIÓ", New: "KOALÍCIÓ"},
	{Old: "ÚJ BALOLDAL", New: "ÚJ BAL"},
}

// Columns that can carry a tally. Exactly one must be populated per vote row.
var voteCountCols = []string{"Szavazat", "Kapottérvényesszavazat"}

// Columns that can identify who the tally belongs to. Exactly one must be
// populated per vote row.
var voteIDCols = []string{"Jelölő szervezet(ek)", "A pártlista neve, azonosítója", "Lista neve"}

// candidateCol carries the candidate name on individual-race pages.
const candidateCol = "Jelölt neve"

// idCols mark a row as belonging to one candidate/list rather than being
// page-level metadata.
var idCols = append([]string{candidateCol}, voteIDCols...)

// indicatorCols are resolved by the indicator join, in this order.
var indicatorCols = append([]string{"index"}, idCols...)

// eligibleCols are the known variants of "number of eligible voters
// registered at this precinct", one per form generation, mutually exclusive
// within a generation.
var eligibleCols = []string{
	"A választópolgárok száma a névjegyzékben a választás befejezésekor",
	"A névjegyzékben és a mozgóurnát igénylő választópolgárok jegyzékében lévő választópolgárok száma",
	"A névjegyzékben és a mozgóurnát igénylő választópolgárok jegyzékében szereplő, a szavazókörben lakcímmel rendelkező választópolgárok száma",
	"A névjegyzékben szereplők száma összesen",
	"A választópolgárok száma összesen",
	"A névjegyzékben lévő, a szavazókörben lakcímmel rendelkező választópolgárok száma",
}

// legacyEligibleExact are summed together with "névjegy"-prefixed columns by
// the legacy reconciliation path.
var legacyEligibleExact = []string{
	"A választó polgárok száma összesen",
	"Átjelentkezett választópolgárok száma",
}

// externalKeywords flag a precinct as collecting votes cast elsewhere.
var externalKeywords = []string{
	"külképviseleten szavazók szavazat számlálásra kijelölt",
	"küvi",
	"speciális",
	"átjelentkezettek",
	"átjelentkezettek szavazására kijelölt",
}
