package catalog

var sampleProducts = []Product{
	{
		ID:            "1",
		Name:          "Midnight Butterfly",
		NameDE:        "Mitternachts-Schmetterling",
		Price:         85,
		ImageURL:      "https://images.unsplash.com/photo-1611652022419-a9419f74343d?w=800&h=800&fit=crop",
		Description:   "Elegant butterfly brooch with intricate black and gold beadwork",
		DescriptionDE: "Elegante Schmetterlingsbrosche mit filigraner schwarz-goldener Perlenarbeit",
		Available:     true,
	},
	{
		ID:            "2",
		Name:          "Golden Beetle",
		NameDE:        "Goldener Käfer",
		Price:         95,
		ImageURL:      "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=800&h=800&fit=crop",
		Description:   "Statement beetle brooch featuring golden and emerald beads",
		DescriptionDE: "Auffällige Käferbrosche mit goldenen und smaragdfarbenen Perlen",
		Available:     true,
	},
	{
		ID:            "3",
		Name:          "Crystal Dragonfly",
		NameDE:        "Kristall-Libelle",
		Price:         90,
		ImageURL:      "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=800&h=800&fit=crop",
		Description:   "Delicate dragonfly with crystal-clear and silver beads",
		DescriptionDE: "Zarte Libelle mit kristallklaren und silbernen Perlen",
		Available:     true,
	},
	{
		ID:            "4",
		Name:          "Geometric Star",
		NameDE:        "Geometrischer Stern",
		Price:         80,
		ImageURL:      "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=800&h=800&fit=crop",
		Description:   "Modern geometric star pattern in black and white beads",
		DescriptionDE: "Modernes geometrisches Sternmuster in schwarzen und weißen Perlen",
		Available:     true,
	},
	{
		ID:            "5",
		Name:          "Royal Peacock",
		NameDE:        "Königlicher Pfau",
		Price:         100,
		ImageURL:      "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=800&h=800&fit=crop",
		Description:   "Luxurious peacock feather brooch with blue and green iridescent beads",
		DescriptionDE: "Luxuriöse Pfauenfeder-Brosche mit blau-grünen schillernden Perlen",
		Available:     true,
	},
	{
		ID:            "6",
		Name:          "Abstract Wave",
		NameDE:        "Abstrakte Welle",
		Price:         88,
		ImageURL:      "https://images.unsplash.com/photo-1617038260897-41a1f14a8ca0?w=800&h=800&fit=crop",
		Description:   "Flowing abstract wave design in ocean blue and silver tones",
		DescriptionDE: "Fließendes abstraktes Wellendesign in Ozeanblau und Silbertönen",
		Available:     true,
	},
	{
		ID:            "7",
		Name:          "Coral Bloom",
		NameDE:        "Korallenblüte",
		Price:         92,
		ImageURL:      "https://images.unsplash.com/photo-1602173574767-37ac01994b2a?w=800&h=800&fit=crop",
		Description:   "Vibrant floral brooch inspired by coral reef formations",
		DescriptionDE: "Lebhafte Blumenbrosche inspiriert von Korallenriff-Formationen",
		Available:     true,
	},
	{
		ID:            "8",
		Name:          "Noir Moth",
		NameDE:        "Schwarze Motte",
		Price:         87,
		ImageURL:      "https://images.unsplash.com/photo-1608042314453-ae338d80c427?w=800&h=800&fit=crop",
		Description:   "Mysterious moth brooch in deep black with subtle silver accents",
		DescriptionDE: "Geheimnisvolle Mottenbrosche in tiefem Schwarz mit dezenten Silberakzenten",
		Available:     true,
	},
}
