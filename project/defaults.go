package project

// DefaultProjects 返回内置的项目列表
func DefaultProjects() []Project {
	return []Project{
		{
			Key:   "blockchain",
			Title: "Blockchain-Based Cryptocurrency System",
			Tech:  []string{"Node.js", "REST API", "TCP", "SHA256", "JavaScript", "HTML/CSS"},
			Description: "A comprehensive full-stack cryptocurrency system built from scratch, demonstrating deep " +
				"understanding of blockchain technology and distributed systems. This project showcases advanced " +
				"programming skills and knowledge of cryptographic principles.",
			Features: []string{
				"Complete blockchain implementation with proof-of-work consensus",
				"RESTful API for wallet operations and transaction management",
				"TCP-based peer-to-peer network synchronization",
				"SHA256 cryptographic hashing for block integrity",
				"Responsive web interface for user interactions",
				"Wallet simulation with balance tracking",
				"Transaction validation and mining functionality",
				"Real-time network status monitoring",
			},
			GitHub: "https://github.com/0xshl7/blockchain-cryptocurrency",
			Demo:   "#",
		},
		{
			Key:   "scanner",
			Title: "Web Vulnerability Scanner",
			Tech:  []string{"Python", "HTTP Requests", "OWASP Top 10", "Security Testing", "Automation"},
			Description: "An automated security testing tool designed to identify common web vulnerabilities. " +
				"Built with Python and following OWASP guidelines, this scanner helps security professionals " +
				"identify potential threats in web applications.",
			Features: []string{
				"Automated SQL Injection detection with multiple payload types",
				"Cross-Site Scripting (XSS) vulnerability identification",
				"Custom HTTP request crafting and response analysis",
				"Comprehensive vulnerability reporting system",
				"OWASP Top 10 compliance and classification",
				"Multi-threaded scanning for improved performance",
				"False positive reduction algorithms",
				"Export reports in multiple formats (JSON, HTML, PDF)",
			},
			GitHub: "https://github.com/0xshl7/web-vulnerability-scanner",
			Demo:   "#",
		},
	}
}
