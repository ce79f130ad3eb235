package rules

import "github.com/cleared-dev/spendtrend/internal/model"

// Default returns the built-in rule set.
func Default() RuleSet {
	rs, err := New(defaultRules(), defaultGenericFood())
	if err != nil {
		panic("invalid default rules: " + err.Error())
	}
	return rs
}

func defaultRules() []Rule {
	return []Rule{
		{
			Category: model.CategoryDirectDeposits,
			Exact:    true,
			Keywords: []string{"AMAZON.COM SVCS  DIRECT DEP", "CALLEN LOGISTICS PAYROLL"},
		},
		{
			Category: model.CategoryFood,
			Keywords: []string{
				"McDonald's", "Burger King", "Starbucks", "Pizza", "Subway", "Dunkin",
				"Chipotle", "Panera", "KFC", "Taco Bell", "Popeyes", "Chick-fil-A",
				"Wendy's", "Arby's", "Sonic", "Five Guys", "Domino's", "Papa John's",
				"Olive Garden", "Applebee's", "LongHorn", "Red Lobster", "Cheesecake Factory",
				"IHOP", "Denny's", "Buffalo Wild Wings", "Outback", "Cracker Barrel", "Texas Roadhouse",
				"Playa Bowls", "Cold Stone", "Shake Shack", "Jersey Mike's", "Wawa", "Tim Hortons",
				"Baskin Robbins", "Rita's", "Qdoba", "Boston Market", "Peet's Coffee", "Tropical Smoothie",
			},
		},
		{
			Category: model.CategorySubscriptions,
			Keywords: []string{"Netflix", "Spotify", "Disney", "Hulu", "YouTube", "Amazon Prime"},
		},
		{
			Category: model.CategoryGas,
			Keywords: []string{"Gas", "Shell", "Exxon", "BP", "Chevron", "Mobil", "Texaco"},
		},
		{
			Category: model.CategoryShopping,
			Keywords: []string{
				"Amazon", "Walmart", "Target", "eBay", "Best Buy", "Costco", "Macy's",
				"Foot Locker", "Urban Outfitters", "Champs", "Adidas", "Nike", "Zara",
				"H&M", "Gap", "Old Navy", "Forever 21", "Nordstrom", "Sephora", "Ulta",
				"Bloomingdale's", "Anthropologie", "Victoria's Secret", "Banana Republic",
				"Lululemon", "Aerie", "American Eagle", "UNIQUE THRIFT STORE",
			},
		},
		{
			Category: model.CategoryTolls,
			Keywords: []string{"EZPass", "E-ZPass", "Toll", "Turnpike", "Expressway", "Bridge"},
		},
		{Category: model.CategoryOther},
	}
}

func defaultGenericFood() []string {
	return []string{"bagel", "coffee", "sandwich", "burrito", "smoothie", "salad", "donut", "croissant", "pizza", "burger", "taco"}
}
