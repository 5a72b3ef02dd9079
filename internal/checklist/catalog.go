package checklist

import "github.com/noah-isme/checklist-epi-api/internal/models"

const (
	epi   = models.CategoryEPI
	epc   = models.CategoryEPC
	ind   = models.CategoryIndividualTool
	colet = models.CategoryCollectiveTool
)

type catalogEntry struct {
	id       int
	category models.Category
	qty      int
	desc     string
	rural    bool
}

// stcCatalog is the default catalog and the one used by STC teams.
var stcCatalog = []catalogEntry{
	{1001, epi, 1, "Capacete de segurança classe B com jugular", false},
	{1002, epi, 1, "Óculos de proteção incolor", false},
	{1003, epi, 1, "Óculos de proteção escuro", false},
	{1004, epi, 1, "Luva isolante de borracha classe 0 (1 kV)", false},
	{1005, epi, 1, "Luva de cobertura em vaqueta para luva isolante", false},
	{1006, epi, 1, "Luva de vaqueta", false},
	{1007, epi, 1, "Cinturão tipo paraquedista com talabarte", false},
	{1008, epi, 1, "Botina de segurança isolante", false},
	{1009, epi, 1, "Vestimenta antichama (calça e camisa) NR-10", false},
	{1010, epi, 1, "Protetor auricular tipo plug", false},
	{1011, epi, 1, "Perneira de proteção contra picada de animais", true},
	{1012, epi, 1, "Capa de chuva", false},
	{1013, epi, 1, "Protetor solar FPS 30", false},
	{1030, ind, 1, "Alicate universal isolado 1 kV", false},
	{1031, ind, 1, "Alicate de corte diagonal isolado 1 kV", false},
	{1032, ind, 1, "Chave de fenda isolada 1 kV", false},
	{1033, ind, 1, "Chave Phillips isolada 1 kV", false},
	{1034, ind, 1, "Canivete de eletricista", false},
	{1035, ind, 1, "Detector de tensão por aproximação", false},
	{1036, ind, 1, "Bolsa de lona para ferramentas", false},
	{1050, epc, 6, "Cone de sinalização", false},
	{1051, epc, 1, "Fita zebrada de sinalização", false},
	{1052, epc, 2, "Placa de sinalização \"Homens trabalhando\"", false},
	{1053, epc, 1, "Conjunto de aterramento temporário BT", false},
	{1054, epc, 1, "Conjunto de aterramento temporário MT", false},
	{1055, epc, 1, "Manta isolante de borracha", false},
	{1056, epc, 1, "Kit de primeiros socorros", false},
	{1057, epc, 1, "Extintor de incêndio PQS 4 kg", false},
	{1058, epc, 2, "Bandeirola de sinalização", false},
	{1059, epc, 2, "Lanterna de sinalização noturna", true},
	{1070, colet, 1, "Escada de fibra extensível", false},
	{1071, colet, 1, "Escada de fibra singela", false},
	{1072, colet, 1, "Vara de manobra telescópica", false},
	{1073, colet, 1, "Detector de tensão de contato para vara", false},
	{1074, colet, 1, "Alicate volt-amperímetro", false},
	{1075, colet, 1, "Corda de serviço 1/2\" (30 m)", false},
	{1076, colet, 1, "Carretilha", false},
	{1077, colet, 1, "Facão com bainha", true},
	{1078, colet, 1, "Foice", true},
	{1079, colet, 1, "Serra de poda com cabo extensível", true},
	{1080, colet, 1, "Cavadeira articulada", true},
	{1081, colet, 1, "Lanterna portátil recarregável", false},
}

// obrasLVCatalog lists OBRAS live-line material. Individual tools are
// stored as collective and reclassified when the catalog is loaded.
var obrasLVCatalog = []catalogEntry{
	{2001, epi, 1, "Capacete de segurança classe B com jugular", false},
	{2002, epi, 1, "Óculos de proteção incolor", false},
	{2003, epi, 1, "Luva isolante de borracha classe 2 (17 kV)", false},
	{2004, epi, 1, "Luva de cobertura em vaqueta para luva isolante", false},
	{2005, epi, 1, "Manga isolante classe 2", false},
	{2006, epi, 1, "Cinturão tipo paraquedista com talabarte", false},
	{2007, epi, 1, "Botina de segurança isolante", false},
	{2008, epi, 1, "Vestimenta antichama (calça e camisa) NR-10", false},
	{2009, epi, 1, "Balaclava antichama", false},
	{2010, epi, 1, "Protetor auricular tipo plug", false},
	{2020, epc, 8, "Cone de sinalização", false},
	{2021, epc, 1, "Fita zebrada de sinalização", false},
	{2022, epc, 2, "Placa de sinalização \"Homens trabalhando\"", false},
	{2023, epc, 6, "Cobertura isolante circular para condutor", false},
	{2024, epc, 4, "Cobertura isolante para isolador", false},
	{2025, epc, 2, "Cobertura isolante para cruzeta", false},
	{2026, epc, 4, "Manta isolante de borracha classe 2", false},
	{2027, epc, 8, "Grampo para manta isolante", false},
	{2028, epc, 1, "Conjunto de aterramento temporário MT", false},
	{2029, epc, 1, "Kit de primeiros socorros", false},
	{2030, epc, 1, "Extintor de incêndio PQS 6 kg", false},
	{2040, colet, 2, "Bastão de manobra", false},
	{2041, colet, 1, "Bastão garra", false},
	{2042, colet, 1, "Detector de tensão MT", false},
	{2043, colet, 1, "Corda de serviço isolante", false},
	{2044, colet, 1, "Carretilha isolada", false},
	{2045, colet, 1, "Escada de fibra extensível", false},
	{2051, colet, 2, "Alicate universal nº 8", false},
	{2052, colet, 2, "Alicate bomba d’água isolado 1 kV", false},
	{2057, colet, 2, "Chave de fenda", false},
	{2060, colet, 1, "Chave com catraca (completa) isolação 1 kV", false},
	{2061, colet, 1, "Chave combinada 1/2\" isolação 1 kV", false},
	{2062, colet, 1, "Chave combinada 3/4\" isolação 1 kV", false},
	{2063, colet, 1, "Chave combinada 11/16\" isolação 1 kV", false},
	{2064, colet, 1, "Chave combinada 5/8\" isolação 1 kV", false},
	{2065, colet, 1, "Chave combinada 7/8\" isolação 1 kV", false},
	{2066, colet, 1, "Chave combinada 9/16\" isolação 1 kV", false},
	{2067, colet, 1, "Chave de regulagem 12\" isolada 1 kV", false},
	{2068, colet, 1, "Chave de regulagem 8\" isolada 1 kV", false},
	{2075, colet, 1, "Talha de alavanca 1,5 t", false},
	{2076, colet, 2, "Esticador de cabo (rã)", false},
	{2080, colet, 1, "Marreta 1 kg", false},
	{2081, colet, 1, "Marreta 2 kg", false},
	{2085, colet, 1, "Tesourão para cabo grande", false},
	{2086, colet, 1, "Tesourão com cabo isolado pequeno", false},
	{2089, colet, 1, "Alicate com cremalheira para corte de cabo com alma de aço", false},
	{2090, colet, 1, "Megômetro", false},
}

// obrasLMCatalog lists OBRAS dead-line material.
var obrasLMCatalog = []catalogEntry{
	{3001, epi, 1, "Capacete de segurança classe B com jugular", false},
	{3002, epi, 1, "Óculos de proteção incolor", false},
	{3003, epi, 1, "Luva de vaqueta", false},
	{3004, epi, 1, "Luva isolante de borracha classe 0 (1 kV)", false},
	{3005, epi, 1, "Cinturão tipo paraquedista com talabarte", false},
	{3006, epi, 1, "Botina de segurança isolante", false},
	{3007, epi, 1, "Vestimenta antichama (calça e camisa) NR-10", false},
	{3008, epi, 1, "Protetor auricular tipo plug", false},
	{3009, epi, 1, "Perneira de proteção contra picada de animais", true},
	{3020, ind, 1, "Alicate universal isolado 1 kV", false},
	{3021, ind, 1, "Chave de fenda isolada 1 kV", false},
	{3022, ind, 1, "Canivete de eletricista", false},
	{3023, ind, 1, "Chave de boca ajustável 10\"", false},
	{3024, ind, 1, "Bolsa de lona para ferramentas", false},
	{3040, epc, 8, "Cone de sinalização", false},
	{3041, epc, 1, "Fita zebrada de sinalização", false},
	{3042, epc, 2, "Placa de sinalização \"Homens trabalhando\"", false},
	{3043, epc, 2, "Conjunto de aterramento temporário MT", false},
	{3044, epc, 1, "Conjunto de aterramento temporário BT", false},
	{3045, epc, 1, "Kit de primeiros socorros", false},
	{3046, epc, 1, "Extintor de incêndio PQS 6 kg", false},
	{3060, colet, 1, "Detector de tensão MT", false},
	{3061, colet, 1, "Vara de manobra telescópica", false},
	{3062, colet, 2, "Escada de fibra extensível", false},
	{3063, colet, 1, "Corda de serviço 1/2\" (30 m)", false},
	{3064, colet, 2, "Carretilha", false},
	{3065, colet, 1, "Talha de alavanca 1,5 t", false},
	{3066, colet, 1, "Esticador de cabo (rã)", false},
	{3067, colet, 1, "Cavadeira articulada", false},
	{3068, colet, 1, "Alavanca de ferro 1,5 m", false},
	{3069, colet, 1, "Tesourão para cabo grande", false},
	{3070, colet, 1, "Motosserra", true},
}

// Override replaces the category of the listed item ids when the catalog for
// Sector/Modality is loaded.
type Override struct {
	Sector   models.Sector
	Modality models.Modality
	IDs      map[int]struct{}
	Category models.Category
}

// Overrides is the fixed reclassification table applied at catalog load.
var Overrides = []Override{
	{
		Sector:   models.SectorObras,
		Modality: models.ModalityLV,
		IDs: idSet(2051, 2052, 2057, 2060, 2061, 2062, 2063, 2064, 2065, 2066, 2067, 2068,
			2080, 2081, 2086, 2089),
		Category: models.CategoryIndividualTool,
	},
}

func idSet(ids ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// CatalogFor returns fresh items for the sector and modality: no found
// quantity, empty note and no evidence. An empty sector has no items.
func CatalogFor(sector models.Sector, modality models.Modality) []models.LineItem {
	var entries []catalogEntry
	switch sector {
	case models.SectorNone:
		return []models.LineItem{}
	case models.SectorObras:
		if modality == models.ModalityLV {
			entries = obrasLVCatalog
		} else {
			entries = obrasLMCatalog
		}
	default:
		entries = stcCatalog
	}

	items := make([]models.LineItem, len(entries))
	for i, e := range entries {
		items[i] = models.LineItem{
			ID:          e.id,
			Category:    e.category,
			StandardQty: e.qty,
			Description: e.desc,
			RuralOnly:   e.rural,
			Evidence:    []string{},
		}
	}
	return Reclassify(sector, modality, items, Overrides)
}

// DefaultCatalog is the catalog loaded by new and reset sessions.
func DefaultCatalog() []models.LineItem {
	return CatalogFor(models.SectorSTC, models.ModalityNone)
}

// Reclassify applies every override matching sector and modality. The input
// slice is not modified.
func Reclassify(sector models.Sector, modality models.Modality, items []models.LineItem, overrides []Override) []models.LineItem {
	out := models.CloneItems(items)
	for _, o := range overrides {
		if o.Sector != sector || o.Modality != modality {
			continue
		}
		for i := range out {
			if _, ok := o.IDs[out[i].ID]; ok {
				out[i].Category = o.Category
			}
		}
	}
	return out
}
