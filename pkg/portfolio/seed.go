package portfolio

// Seed returns the built-in catalog served when no data source is
// configured.
func Seed() []Project {
	return []Project{
		{
			ID:          "analytics-dashboard",
			Title:       "Analytics Dashboard",
			Description: "A comprehensive data visualization platform with real-time analytics and intuitive user interface.",
			Images:      []string{"/assets/project-1.jpg"},
			Tags:        []string{"React", "TypeScript", "D3.js"},
			Link:        "#",
			Position:    0,
		},
		{
			ID:          "luxury-e-commerce",
			Title:       "Luxury E-Commerce",
			Description: "Premium shopping experience for high-end fashion brands with seamless checkout flow.",
			Images:      []string{"/assets/project-2.jpg"},
			Tags:        []string{"Next.js", "Stripe", "Prisma"},
			Link:        "#",
			Position:    1,
		},
		{
			ID:          "creative-agency",
			Title:       "Creative Agency",
			Description: "Bold and expressive portfolio website featuring dynamic animations and immersive storytelling.",
			Images:      []string{"/assets/project-3.jpg"},
			Tags:        []string{"React", "GSAP", "Three.js"},
			Link:        "#",
			Position:    2,
		},
	}
}
