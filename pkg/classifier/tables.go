package classifier

// The keyword and synonym tables are editorial content, not logic. They are
// kept as plain data so moderators can extend them from a YAML file without
// touching the algorithm (see internal/config.LoadRules).
//
// Matching conventions:
//   - Clarification-rule and override keywords are matched against the
//     Turkish-lowercased input with diacritics intact ("özel ders").
//   - Detector keywords and synonyms are matched against Normalize()d text,
//     so they must be written in folded form ("tasarim", "e ticaret").

// TargetPair names a forced destination in the taxonomy. If the pair is
// missing from the taxonomy supplied on a call, the safety fallback applies.
type TargetPair struct {
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
}

// Detector is one coarse keyword-family rule used as a baseline guess
// before score-based refinement. Detectors run in slice order; first match
// wins.
type Detector struct {
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords"`
	Category    string   `yaml:"category"`
	Subcategory string   `yaml:"subcategory"`
}

// Tables bundles every editorial table the rule engine consumes.
type Tables struct {
	// Turn-1 gate.
	MinTokens int `yaml:"min_tokens"`

	// Rule a: offering private lessons reads either as a classified ad or
	// as an informational share; the question names both destinations and
	// expects a free-text answer interpreted on the next turn.
	LessonKeywords []string `yaml:"lesson_keywords"`
	LessonQuestion string   `yaml:"lesson_question"`

	// Rule b: e-commerce mentioned without saying what for.
	CommerceKeywords       []string `yaml:"commerce_keywords"`
	CommerceDisambiguators []string `yaml:"commerce_disambiguators"`
	CommerceQuestion       string   `yaml:"commerce_question"`

	// Rule c: "uygulama" without a platform.
	AppKeywords         []string `yaml:"app_keywords"`
	AppPlatformKeywords []string `yaml:"app_platform_keywords"`
	AppQuestion         string   `yaml:"app_question"`
	AppOptions          []string `yaml:"app_options"`

	// Rule d: wants to build a site but no site type named.
	SiteKeywords     []string `yaml:"site_keywords"`
	SiteTypeKeywords []string `yaml:"site_type_keywords"`
	SiteQuestion     string   `yaml:"site_question"`
	SiteOptions      []string `yaml:"site_options"`

	// Rule e: short ask for help.
	HelpKeywords  []string `yaml:"help_keywords"`
	HelpMaxTokens int      `yaml:"help_max_tokens"`
	HelpQuestion  string   `yaml:"help_question"`
	HelpOptions   []string `yaml:"help_options"`

	// Rule f: catch-all for very short input. EscapeKeywords are the
	// technology names considered sufficient on their own.
	CatchAllMaxTokens int      `yaml:"catch_all_max_tokens"`
	EscapeKeywords    []string `yaml:"escape_keywords"`
	ElaborateQuestion string   `yaml:"elaborate_question"`

	// Turn-2+ override, keyed off the latest user turn only.
	AdKeywords   []string   `yaml:"ad_keywords"`
	AdTarget     TargetPair `yaml:"ad_target"`
	InfoKeywords []string   `yaml:"info_keywords"`
	InfoTarget   TargetPair `yaml:"info_target"`

	// Synonym table for scoring, keyed by the normalized category or
	// subcategory display name.
	Synonyms map[string][]string `yaml:"synonyms"`

	// Freelance intent runs before the generic detectors and carries a
	// sell-vs-buy-vs-offer sub-decision.
	FreelanceKeywords []string   `yaml:"freelance_keywords"`
	SellKeywords      []string   `yaml:"sell_keywords"`
	BuyKeywords       []string   `yaml:"buy_keywords"`
	FreelanceSell     TargetPair `yaml:"freelance_sell"`
	FreelanceBuy      TargetPair `yaml:"freelance_buy"`
	FreelanceOffer    TargetPair `yaml:"freelance_offer"`

	Detectors []Detector `yaml:"detectors"`

	// Scoring knobs.
	ScoreThreshold   int `yaml:"score_threshold"`
	EarlyTokenWindow int `yaml:"early_token_window"`
}

// DefaultTables returns the built-in editorial content, hand-tuned for the
// forum's Turkish audience and its stock taxonomy.
func DefaultTables() *Tables {
	return &Tables{
		MinTokens: 3,

		LessonKeywords: []string{
			"özel ders", "ders veriyorum", "ders vermek", "ders verebilirim",
			"kurs veriyorum", "eğitim veriyorum", "öğretiyorum", "öğretmenlik",
		},
		LessonQuestion: "Bunu bir ilan olarak mı paylaşmak istiyorsunuz (Freelancer > Hizmet Verme), " +
			"yoksa bilgi/teknik paylaşımı mı olacak (Yazılım Dünyası)?",

		CommerceKeywords: []string{"e-ticaret", "eticaret", "ticaret"},
		CommerceDisambiguators: []string{
			"satmak", "satıyorum", "satın", "almak", "alıyorum",
			"yardım", "öğrenmek", "öğrenmeye",
		},
		CommerceQuestion: "E-ticaretle ilgili tam olarak ne yapmak istiyorsunuz? " +
			"Bir siteyi satmak mı, site geliştirme desteği almak mı, yoksa e-ticareti öğrenmek mi?",

		AppKeywords:         []string{"uygulama"},
		AppPlatformKeywords: []string{"web", "mobil", "masaüstü", "desktop", "android", "ios"},
		AppQuestion:         "Nasıl bir uygulamadan bahsediyorsunuz: web, mobil yoksa masaüstü mü?",
		AppOptions:          []string{"Web", "Mobil", "Masaüstü"},

		SiteKeywords: []string{
			"site yapmak", "site kurmak", "site yaptırmak", "site açmak",
			"site istiyorum", "sitesi olsun",
		},
		SiteTypeKeywords: []string{"e-ticaret", "eticaret", "blog", "portfolyo", "kurumsal"},
		SiteQuestion:     "Nasıl bir site düşünüyorsunuz? E-ticaret, blog, portfolyo yoksa kurumsal bir site mi?",
		SiteOptions:      []string{"E-Ticaret", "Blog", "Portfolyo", "Kurumsal"},

		HelpKeywords:  []string{"yardım", "lazım", "ihtiyacım", "ihtiyaç"},
		HelpMaxTokens: 8,
		HelpQuestion: "Nasıl bir yardıma ihtiyacınız var? Bir hatayı mı çözmek istiyorsunuz, " +
			"bir konuyu mu öğrenmek istiyorsunuz, proje danışmanlığı mı yoksa freelance destek mi arıyorsunuz?",
		HelpOptions: []string{"Hata çözümü", "Öğrenmek istiyorum", "Proje danışmanlığı", "Freelance destek"},

		CatchAllMaxTokens: 5,
		EscapeKeywords:    []string{"react", "laravel"},
		ElaborateQuestion: "Konunuzu biraz daha detaylandırır mısınız? Ne hakkında paylaşım yapmak " +
			"istediğinizi birkaç cümleyle anlatırsanız doğru kategoriyi önerebilirim.",

		AdKeywords: []string{
			"ilan", "hizmet veriyorum", "hizmet ver", "satıyorum", "ücretli", "freelance olarak",
		},
		AdTarget: TargetPair{Category: "Freelancer", Subcategory: "Hizmet Verme"},
		InfoKeywords: []string{
			"bilgi", "paylaşım", "teknik", "rehber", "öğretici", "anlatmak", "anlatacağım",
		},
		InfoTarget: TargetPair{Category: "Yazılım Dünyası", Subcategory: "Eğitim İçerikleri"},

		Synonyms: map[string][]string{
			"frontend gelistirme": {"react", "vue", "angular", "javascript", "typescript", "css", "html", "arayuz"},
			"backend gelistirme":  {"php", "laravel", "node", "golang", "python", "java", "veritabani", "sunucu"},
			"mobil gelistirme":    {"android", "ios", "flutter", "react native", "swift", "kotlin"},
			"e ticaret":           {"odeme", "sanal pos", "pazaryeri", "shopify", "woocommerce", "dropshipping"},
			"oyun gelistirme":     {"unity", "unreal", "godot", "oyun motoru"},
			"grafik tasarim":      {"logo", "photoshop", "illustrator", "figma", "banner"},
			"hizmet verme":        {"ilan", "satiyorum", "ucretli"},
			"hizmet alma":         {"yaptirmak", "ariyorum", "talep"},
			"yazilim dunyasi":     {"yazilim", "kod", "programlama", "gelistirici"},
			"wordpress":           {"tema", "eklenti", "woocommerce"},
		},

		FreelanceKeywords: []string{"freelance", "freelancer", "hizmet"},
		SellKeywords:      []string{"satiyorum", "satilik", "satmak istiyorum"},
		BuyKeywords:       []string{"yaptirmak", "hizmet almak", "ariyorum", "almak istiyorum"},
		FreelanceSell:     TargetPair{Category: "Freelancer", Subcategory: "Hizmet Verme"},
		FreelanceBuy:      TargetPair{Category: "Freelancer", Subcategory: "Hizmet Alma"},
		FreelanceOffer:    TargetPair{Category: "Freelancer", Subcategory: "Hizmet Verme"},

		Detectors: []Detector{
			{
				Name:        "design",
				Keywords:    []string{"tasarim", "logo", "photoshop", "figma", "illustrator", "banner"},
				Category:    "Tasarım",
				Subcategory: "Grafik Tasarım",
			},
			{
				Name:        "frontend",
				Keywords:    []string{"frontend", "react", "vue", "angular", "javascript", "typescript", "css", "arayuz"},
				Category:    "Yazılım Dünyası",
				Subcategory: "Frontend Geliştirme",
			},
			{
				Name:        "backend",
				Keywords:    []string{"backend", "php", "laravel", "node", "golang", "python", "java", "veritabani", "sunucu"},
				Category:    "Yazılım Dünyası",
				Subcategory: "Backend Geliştirme",
			},
			{
				Name:        "mobile",
				Keywords:    []string{"mobil", "android", "ios", "flutter", "swift", "kotlin"},
				Category:    "Yazılım Dünyası",
				Subcategory: "Mobil Geliştirme",
			},
			{
				Name:        "ecommerce",
				Keywords:    []string{"e ticaret", "eticaret", "odeme", "sanal pos", "pazaryeri", "shopify", "woocommerce"},
				Category:    "Yazılım Dünyası",
				Subcategory: "E-Ticaret",
			},
		},

		ScoreThreshold:   5,
		EarlyTokenWindow: 6,
	}
}
