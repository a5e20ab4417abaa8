package catalog

// Default is the menu used when no catalog file is configured.
func Default() *Catalog {
	c, err := New([]ServiceDefinition{
		{Name: "Haircut", DurationMin: 45, Price: 35000, Category: "hair"},
		{Name: "Hair Coloring", DurationMin: 120, Price: 120000, Category: "hair"},
		{Name: "Manicure", DurationMin: 60, Price: 40000, Category: "nails"},
		{Name: "Pedicure", DurationMin: 60, Price: 45000, Category: "nails"},
		{Name: "Facial", DurationMin: 60, Price: 80000, Category: "skin"},
		{Name: "Massage", DurationMin: 90, Price: 100000, Category: "spa"},
		{Name: "Eyelash Extension", DurationMin: 90, Price: 90000, Category: "beauty"},
	})
	if err != nil {
		panic(err)
	}
	return c
}
