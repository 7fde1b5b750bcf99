package recipe

import (
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
)

// seed loads the built-in sample catalog.
func (s *MemorySource) seed() {
	recipes := []*domain.Recipe{
		{
			ID:       "butter-chicken",
			Title:    "Butter Chicken",
			Category: "Main Course",
			Ingredients: `500g chicken breast, cubed
1 cup yogurt
2 tbsp tandoori masala
2 tbsp butter
1 cup tomato puree
1/2 cup cream
1 tbsp kasoori methi
1 tsp garam masala
1 tsp red chili powder
1 tbsp ginger-garlic paste
Salt to taste`,
			DietaryTags: []string{"non-vegetarian", "gluten-free", "creamy"},
			CookingTime: 45 * time.Minute,
			Difficulty:  "medium",
			Description: "A rich and creamy Indian curry with tender chicken pieces in a tomato-based sauce.",
			Steps: steps(
				"Marinate chicken with yogurt, tandoori masala, and salt for 2 hours.",
				"Grill or bake chicken until charred and cooked through.",
				"Heat butter in a pan, add ginger-garlic paste, cook for 2 minutes.",
				"Add tomato puree, spices, and cook until oil separates.",
				"Add cream, kasoori methi, and cooked chicken.",
				"Simmer for 10 minutes, garnish with cream and butter.",
				"Serve hot with naan or rice.",
			),
		},
		{
			ID:       "vegetable-stir-fry",
			Title:    "Vegetable Stir Fry",
			Category: "Main Course",
			Ingredients: `2 tbsp vegetable oil
2 cloves garlic, minced
1 inch ginger, minced
2 bell peppers, sliced
1 cup broccoli florets
1 cup snap peas
2 carrots, julienned
2 tbsp soy sauce
1 tbsp oyster sauce
1 tsp cornstarch
1/4 cup water
Salt and pepper to taste`,
			DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
			CookingTime: 20 * time.Minute,
			Difficulty:  "easy",
			Description: "A quick and healthy stir-fry with colorful vegetables in a savory sauce.",
			Steps: steps(
				"Heat oil in a wok or large skillet over high heat.",
				"Add garlic and ginger, stir-fry for 30 seconds until fragrant.",
				"Add bell peppers and carrots, stir-fry for 2 minutes.",
				"Add broccoli and snap peas, continue stir-frying for 3 minutes.",
				"Mix cornstarch with water and add to pan along with soy sauce and oyster sauce.",
				"Stir until sauce thickens, about 1-2 minutes.",
				"Season with salt and pepper, serve hot over steamed rice.",
			),
		},
		{
			ID:       "chocolate-chip-cookies",
			Title:    "Chocolate Chip Cookies",
			Category: "Dessert",
			Ingredients: `2 1/4 cups all-purpose flour
1 tsp baking soda
1 tsp salt
1 cup unsalted butter, softened
3/4 cup granulated sugar
3/4 cup brown sugar
2 large eggs
2 tsp vanilla extract
2 cups chocolate chips`,
			DietaryTags: []string{"vegetarian", "contains-dairy"},
			CookingTime: 25 * time.Minute,
			Difficulty:  "easy",
			Description: "Classic homemade chocolate chip cookies with crispy edges and chewy centers.",
			Steps: steps(
				"Preheat oven to 375°F (190°C) and line baking sheets with parchment paper.",
				"In a bowl, whisk together flour, baking soda, and salt.",
				"In a large bowl, cream together butter and both sugars until light and fluffy.",
				"Beat in eggs one at a time, then stir in vanilla.",
				"Gradually mix in the flour mixture until just combined.",
				"Stir in chocolate chips.",
				"Drop rounded tablespoons of dough onto prepared baking sheets.",
				"Bake for 9-11 minutes until golden brown around the edges.",
				"Let cool on baking sheets for 5 minutes, then transfer to wire racks.",
			),
		},
		{
			ID:       "greek-salad",
			Title:    "Greek Salad",
			Category: "Salad",
			Ingredients: `1 large cucumber, diced
4 large tomatoes, diced
1 red onion, thinly sliced
1 cup Kalamata olives
200g feta cheese, cubed
2 tbsp extra virgin olive oil
1 tbsp red wine vinegar
1 tsp dried oregano
Salt and pepper to taste`,
			DietaryTags: []string{"vegetarian", "gluten-free"},
			CookingTime: 15 * time.Minute,
			Difficulty:  "easy",
			Description: "A refreshing Mediterranean salad with fresh vegetables and tangy feta cheese.",
			Steps: steps(
				"In a large bowl, combine cucumber, tomatoes, and red onion.",
				"Add Kalamata olives and feta cheese cubes.",
				"In a small bowl, whisk together olive oil, red wine vinegar, and oregano.",
				"Pour dressing over the salad and gently toss to combine.",
				"Season with salt and pepper to taste.",
				"Let the salad sit for 10 minutes to allow flavors to meld.",
				"Serve chilled as a refreshing side dish or light meal.",
			),
		},
		{
			ID:       "avocado-toast",
			Title:    "Avocado Toast",
			Category: "Breakfast",
			Ingredients: `2 slices whole grain bread
1 ripe avocado
1 lemon
Salt and pepper to taste
Red pepper flakes (optional)
Microgreens or sprouts (optional)`,
			DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
			CookingTime: 10 * time.Minute,
			Difficulty:  "easy",
			Description: "A simple and nutritious breakfast with creamy avocado on crispy toast.",
			Steps: steps(
				"Toast the bread until golden brown and crispy.",
				"Cut the avocado in half, remove the pit, and scoop the flesh into a bowl.",
				"Mash the avocado with a fork until smooth but still slightly chunky.",
				"Squeeze lemon juice over the mashed avocado and season with salt and pepper.",
				"Spread the avocado mixture evenly over the toasted bread.",
				"Sprinkle with red pepper flakes if desired.",
				"Top with microgreens or sprouts for extra nutrition and presentation.",
				"Serve immediately while the toast is still warm and crispy.",
			),
		},
	}

	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}

func steps(instructions ...string) []domain.Step {
	out := make([]domain.Step, len(instructions))
	for i, text := range instructions {
		out[i] = domain.Step{Number: i + 1, Instruction: text}
	}
	return out
}
