package proposal

import (
	"fmt"
	"strings"
)

func systemInstruction(agencyName string) string {
	return fmt.Sprintf("You are a professional business proposal writer for %s, a leading digital agency specializing in branding, digital campaigns, 3D renderings, and walkthroughs. Create compelling, detailed proposals that win clients.", agencyName)
}

// buildPrompt assembles the proposal prompt: customer block, service lines
// with computed totals, and the numbered section outline the proposal must
// follow.
func buildPrompt(req Request) string {
	var services strings.Builder
	for _, line := range req.Services {
		unit := line.Unit
		if unit == "" {
			unit = "item"
		}
		fmt.Fprintf(&services, "- %s: %s (%d %s) - $%.2f\n",
			line.ServiceName, line.SubServiceName, line.Quantity, unit, float64(line.LineTotalCents)/100)
	}

	priority := "Standard"
	if req.Urgent {
		priority = "Urgent"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive business proposal for %s based on the following customer inquiry:\n\n", req.AgencyName)
	b.WriteString("Customer Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.CustomerName)
	fmt.Fprintf(&b, "- Email: %s\n", req.CustomerEmail)
	fmt.Fprintf(&b, "- Phone: %s\n", req.CustomerPhone)
	fmt.Fprintf(&b, "- Country: %s\n", req.Country)
	fmt.Fprintf(&b, "- Priority: %s\n", priority)
	if req.Message != "" {
		fmt.Fprintf(&b, "- Message: %s\n", req.Message)
	}
	b.WriteString("\nSelected Services:\n")
	b.WriteString(services.String())
	fmt.Fprintf(&b, "\nTotal Estimated Value: $%.2f\n\n", float64(req.TotalCents)/100)
	b.WriteString(`Please create a professional proposal that includes:

1. **Executive Summary** - Brief overview of the project and the agency's capabilities
2. **Project Understanding** - Detailed analysis of the client's requirements
3. **Proposed Solution** - Comprehensive breakdown of services and approach
4. **Timeline & Milestones** - Realistic project schedule with key deliverables
5. **Investment & ROI** - Detailed pricing breakdown and expected return on investment
6. **Why Us** - Company credentials, expertise, and unique value proposition
7. **Next Steps** - Clear action items and contact information

Make the proposal:
- Professional and persuasive
- Tailored to the specific services requested
- Include industry best practices
- Be specific about deliverables and timelines
- Address the urgency if marked as urgent

Format the response as a well-structured HTML document that can be displayed in a web interface.
`)

	return b.String()
}
