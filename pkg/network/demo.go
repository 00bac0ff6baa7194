package network

const demoPicture = "/placeholder.svg?height=48&width=48"

// DemoNodes returns a fresh copy of the fallback fixture's ten professionals.
func DemoNodes() []Node {
	return []Node{
		{
			ID: "demo1", Username: "sarah_dev", Name: "Sarah Johnson", Picture: demoPicture,
			Skills:    []string{"JavaScript", "React", "Node.js", "TypeScript", "GraphQL", "Next.js", "Redux", "MongoDB"},
			Companies: []string{"Google", "Stripe", "Airbnb"},
			Location:  "San Francisco, CA",
		},
		{
			ID: "demo2", Username: "mike_design", Name: "Mike Chen", Picture: demoPicture,
			Skills:    []string{"UI/UX Design", "Figma", "JavaScript", "React", "Design Systems", "User Research", "Prototyping", "Adobe Creative Suite"},
			Companies: []string{"Airbnb", "Stripe", "Dribbble"},
			Location:  "San Francisco, CA",
		},
		{
			ID: "demo3", Username: "alex_data", Name: "Alex Rodriguez", Picture: demoPicture,
			Skills:    []string{"Python", "Machine Learning", "SQL", "TensorFlow", "Data Analysis", "PyTorch", "Big Data", "Statistics"},
			Companies: []string{"Netflix", "Uber", "Amazon"},
			Location:  "New York, NY",
		},
		{
			ID: "demo4", Username: "emma_product", Name: "Emma Wilson", Picture: demoPicture,
			Skills:    []string{"Product Management", "Analytics", "SQL", "A/B Testing", "Strategy", "User Stories", "Roadmapping", "Agile"},
			Companies: []string{"Google", "Meta", "Microsoft"},
			Location:  "Seattle, WA",
		},
		{
			ID: "demo5", Username: "david_backend", Name: "David Kim", Picture: demoPicture,
			Skills:    []string{"Node.js", "Python", "AWS", "Docker", "GraphQL", "PostgreSQL", "Microservices", "Kubernetes"},
			Companies: []string{"Amazon", "Netflix", "Twitch"},
			Location:  "Seattle, WA",
		},
		{
			ID: "demo6", Username: "lisa_mobile", Name: "Lisa Patel", Picture: demoPicture,
			Skills:    []string{"React Native", "Swift", "Kotlin", "JavaScript", "Mobile Design", "Firebase", "Redux", "iOS Development"},
			Companies: []string{"Uber", "Lyft", "Airbnb"},
			Location:  "San Francisco, CA",
		},
		{
			ID: "demo7", Username: "james_devops", Name: "James Wilson", Picture: demoPicture,
			Skills:    []string{"DevOps", "Kubernetes", "Docker", "AWS", "CI/CD", "Terraform", "Linux", "Jenkins"},
			Companies: []string{"Google", "Amazon", "Microsoft"},
			Location:  "Seattle, WA",
		},
		{
			ID: "demo8", Username: "maria_ai", Name: "Maria Garcia", Picture: demoPicture,
			Skills:    []string{"Machine Learning", "Python", "TensorFlow", "NLP", "Computer Vision", "Data Science", "PyTorch", "Deep Learning"},
			Companies: []string{"OpenAI", "Google", "Meta"},
			Location:  "San Francisco, CA",
		},
		{
			ID: "demo9", Username: "ahmed_fullstack", Name: "Ahmed Hassan", Picture: demoPicture,
			Skills:    []string{"Full Stack Development", "React", "Node.js", "MongoDB", "Express.js", "TypeScript", "Next.js", "Tailwind CSS"},
			Companies: []string{"Shopify", "Stripe", "Vercel"},
			Location:  "Toronto, Canada",
		},
		{
			ID: "demo10", Username: "fatima_security", Name: "Fatima Al-Zahra", Picture: demoPicture,
			Skills:    []string{"Cybersecurity", "Penetration Testing", "Network Security", "Python", "Ethical Hacking", "Security Auditing", "Incident Response", "Risk Assessment"},
			Companies: []string{"CrowdStrike", "Palo Alto Networks", "FireEye"},
			Location:  "Dubai, UAE",
		},
	}
}

// DemoEdges returns the fixture's seventeen hand-authored connections. They
// are kept verbatim, including the reversed duplicates for three pairs.
func DemoEdges() []Edge {
	return []Edge{
		{Source: "demo1", Target: "demo2", Strength: 5, Type: ConnectionSkill, SharedItems: []string{"JavaScript", "React", "Stripe", "Airbnb", "San Francisco"}},
		{Source: "demo1", Target: "demo5", Strength: 4, Type: ConnectionSkill, SharedItems: []string{"JavaScript", "Node.js", "GraphQL", "MongoDB"}},
		{Source: "demo1", Target: "demo6", Strength: 4, Type: ConnectionSkill, SharedItems: []string{"JavaScript", "React", "Redux"}},
		{Source: "demo1", Target: "demo9", Strength: 6, Type: ConnectionSkill, SharedItems: []string{"React", "Node.js", "TypeScript", "Next.js", "MongoDB"}},
		{Source: "demo2", Target: "demo6", Strength: 3, Type: ConnectionCompany, SharedItems: []string{"Airbnb", "Design", "San Francisco"}},
		{Source: "demo3", Target: "demo5", Strength: 2, Type: ConnectionSkill, SharedItems: []string{"Python"}},
		{Source: "demo3", Target: "demo8", Strength: 6, Type: ConnectionSkill, SharedItems: []string{"Python", "Machine Learning", "TensorFlow", "Data Analysis", "PyTorch", "Data Science"}},
		{Source: "demo3", Target: "demo10", Strength: 2, Type: ConnectionSkill, SharedItems: []string{"Python", "Data Analysis"}},
		{Source: "demo4", Target: "demo7", Strength: 3, Type: ConnectionCompany, SharedItems: []string{"Google", "Microsoft", "Seattle"}},
		{Source: "demo4", Target: "demo1", Strength: 2, Type: ConnectionCompany, SharedItems: []string{"Google"}},
		{Source: "demo5", Target: "demo7", Strength: 5, Type: ConnectionSkill, SharedItems: []string{"AWS", "Docker", "Kubernetes", "Microservices"}},
		{Source: "demo5", Target: "demo9", Strength: 3, Type: ConnectionSkill, SharedItems: []string{"Node.js", "MongoDB"}},
		{Source: "demo6", Target: "demo8", Strength: 2, Type: ConnectionLocation, SharedItems: []string{"San Francisco, CA"}},
		{Source: "demo7", Target: "demo5", Strength: 4, Type: ConnectionSkill, SharedItems: []string{"AWS", "Docker", "Kubernetes"}},
		{Source: "demo8", Target: "demo4", Strength: 2, Type: ConnectionCompany, SharedItems: []string{"Google", "Meta"}},
		{Source: "demo9", Target: "demo1", Strength: 5, Type: ConnectionSkill, SharedItems: []string{"React", "Node.js", "TypeScript", "Next.js"}},
		{Source: "demo10", Target: "demo3", Strength: 2, Type: ConnectionSkill, SharedItems: []string{"Python"}},
	}
}

// DemoQuery is the label shown for the demo snapshot.
const DemoQuery = "Demo Network"

// DemoGraph builds a fresh demo snapshot.
func DemoGraph() *Graph {
	g, err := NewGraph(OriginDemo, DemoQuery, DemoNodes(), DemoEdges())
	if err != nil {
		// the fixture is static; a failure here is a programming error
		panic("network: invalid demo fixture: " + err.Error())
	}
	return g
}
