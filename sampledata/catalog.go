package sampledata

// Fixed catalogs used to seed a demo dataset. Tracks are matched by name,
// horses by registration number and drivers/trainers by license number, so
// re-running generation never duplicates rows.

type trackSeed struct {
	Name          string
	Location      string
	Surface       string
	Circumference float64
}

var trackCatalog = []trackSeed{
	{"Woodbine Mohawk Park", "Campbellville, ON", "synthetic", 875.0},
	{"Georgian Downs", "Innisfil, ON", "synthetic", 875.0},
	{"Grand River Raceway", "Elora, ON", "synthetic", 875.0},
	{"Hanover Raceway", "Hanover, ON", "synthetic", 875.0},
	{"Kawartha Downs", "Fraserville, ON", "synthetic", 875.0},
}

type horseSeed struct {
	Name               string
	RegistrationNumber string
	Sex                string
	Color              string
	Owner              string
}

var horseRoster = []horseSeed{
	{"Lightning Strike", "ON2021001", "stallion", "bay", "Thunder Bay Stables"},
	{"Midnight Express", "ON2021002", "mare", "black", "Moonlight Racing"},
	{"Golden Arrow", "ON2021003", "gelding", "chestnut", "Arrow Stables"},
	{"Storm Chaser", "ON2021004", "stallion", "grey", "Weather Vane Farm"},
	{"Fire Dancer", "ON2021005", "mare", "sorrel", "Flame Racing"},
	{"Ice Breaker", "ON2021006", "gelding", "white", "Arctic Stables"},
	{"Thunder Bolt", "ON2021007", "stallion", "bay", "Lightning Farms"},
	{"Wind Walker", "ON2021008", "mare", "brown", "Breeze Stables"},
	{"Northern Mist", "ON2021009", "filly", "grey", "Highland Paddocks"},
	{"Copper Canyon", "ON2021010", "colt", "chestnut", "Red Rock Racing"},
	{"Silent Runner", "ON2021011", "gelding", "black", "Quiet Acres"},
	{"Maple Dash", "ON2021012", "mare", "bay", "Sugarbush Stables"},
}

type personSeed struct {
	Name          string
	LicenseNumber string
	Hometown      string
}

var driverRoster = []personSeed{
	{"John MacDonald", "DR2024001", "Toronto, ON"},
	{"Sarah Johnson", "DR2024002", "Ottawa, ON"},
	{"Mike Wilson", "DR2024003", "Hamilton, ON"},
	{"Lisa Brown", "DR2024004", "London, ON"},
	{"David Smith", "DR2024005", "Kingston, ON"},
	{"Jennifer Davis", "DR2024006", "Windsor, ON"},
	{"Paul Tremblay", "DR2024007", "Sudbury, ON"},
	{"Emily Clarke", "DR2024008", "Barrie, ON"},
	{"Marc Leblanc", "DR2024009", "Timmins, ON"},
	{"Karen White", "DR2024010", "Guelph, ON"},
}

var trainerRoster = []personSeed{
	{"Robert Thompson", "TR2024001", "Mississauga, ON"},
	{"Mary Anderson", "TR2024002", "Brampton, ON"},
	{"James Miller", "TR2024003", "Markham, ON"},
	{"Patricia Garcia", "TR2024004", "Vaughan, ON"},
	{"William Martinez", "TR2024005", "Richmond Hill, ON"},
	{"Susan Taylor", "TR2024006", "Oakville, ON"},
	{"George Kovacs", "TR2024007", "Cambridge, ON"},
	{"Helen Dubois", "TR2024008", "Kitchener, ON"},
	{"Frank O'Neill", "TR2024009", "St. Catharines, ON"},
}
