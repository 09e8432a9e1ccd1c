package catalog

var seedServices = []Service{
	{
		ID:          "service-1",
		Name:        "Banho & Tosa Higiênica",
		Description: "Um banho refrescante com produtos de alta qualidade, seguido de uma tosa higiênica para o conforto do seu pet.",
		Price:       80,
		Duration:    60,
		ImageURL:    "/assets/banho-tosa.png",
	},
	{
		ID:          "service-2",
		Name:        "Tosa da Raça",
		Description: "Tosa especializada que segue os padrões estéticos da raça do seu pet, realçando sua beleza natural.",
		Price:       120,
		Duration:    90,
		ImageURL:    "/assets/tosa-raca.png",
	},
	{
		ID:          "service-3",
		Name:        "Banho Medicamentoso",
		Description: "Tratamento terapêutico com produtos específicos para problemas de pele e pelagem, sob orientação.",
		Price:       100,
		Duration:    75,
		ImageURL:    "/assets/banho-medicamentoso.png",
	},
	{
		ID:          "service-4",
		Name:        "Hidratação de Pelos",
		Description: "Tratamento intensivo para restaurar o brilho, maciez e saúde da pelagem do seu companheiro.",
		Price:       60,
		Duration:    45,
		ImageURL:    "/assets/hidratacao.png",
	},
}

var seedPlans = []Plan{
	{
		ID:          "plano-basico",
		Name:        "Básico",
		Description: "O essencial para o seu pet estar sempre limpo e feliz.",
		Price:       80,
		Benefits: []string{
			"4 Banhos Simples por mês",
			"1 Check-up rápido da pelagem e pele",
			"1 Corte de Unhas por mês",
			"10% de Desconto em serviços avulsos",
		},
	},
	{
		ID:          "plano-premium",
		Name:        "Premium",
		Description: "O pacote completo de cuidados e estética para um pet radiante.",
		Price:       120,
		Benefits: []string{
			"4 Banhos Especiais e 1 Tosa completa por mês",
			"2 Hidratações profissionais",
			"1 Higiene Dental simples",
			"20% de Desconto em Day Care",
		},
	},
	{
		ID:          "plano-vip",
		Name:        "VIP",
		Description: "A experiência definitiva em cuidados, saúde e conveniência.",
		Price:       200,
		Benefits: []string{
			"Banhos e Tosa Higiênica Ilimitados",
			"1 Tosa Estilizada e 2 Hidratações premium",
			"Transporte Gratuito (2 coletas/entregas)",
			"1 Consulta Veterinária (check-up)",
			"30% de Desconto em Hotelzinho",
		},
	},
}
