package typing

// DefaultSetName 首页标题使用的文案集
const DefaultSetName = "hero"

// DefaultCaptionSets 内置文案集
func DefaultCaptionSets() []CaptionSet {
	return []CaptionSet{
		{
			Name: DefaultSetName,
			Captions: []string{
				"Aspiring SOC Intern & Cybersecurity Professional",
				"Threat Detection Specialist",
				"Incident Response Analyst",
				"Vulnerability Assessment Expert",
			},
		},
	}
}
