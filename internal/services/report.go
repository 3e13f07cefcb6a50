package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"alfredoptarigan/ai-mentorship/internal/models"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI Career Analysis Report</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; margin: 0; padding: 40px; background: #f8fafc; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 40px; border-radius: 12px; box-shadow: 0 10px 25px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 40px; border-bottom: 3px solid #6366f1; padding-bottom: 20px; }
        .section { margin-bottom: 40px; }
        .section h2 { color: #1f2937; font-size: 24px; margin-bottom: 20px; border-left: 4px solid #6366f1; padding-left: 15px; }
        .section h3 { color: #374151; font-size: 18px; margin-bottom: 10px; }
        .skill { margin-bottom: 15px; }
        .skill-head { display: flex; justify-content: space-between; margin-bottom: 5px; }
        .skill-bar { background: #e5e7eb; height: 8px; border-radius: 4px; margin: 8px 0; }
        .skill-fill { height: 100%; border-radius: 4px; background: linear-gradient(90deg, #6366f1, #3b82f6); }
        .skill-fill.soft { background: linear-gradient(90deg, #3b82f6, #10b981); }
        .recommendation { border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin-bottom: 20px; }
        .recommendation-head { display: flex; justify-content: space-between; align-items: center; margin-bottom: 10px; }
        .match-score { font-size: 24px; font-weight: bold; color: #6366f1; }
        .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 15px; margin-top: 15px; }
        .plan { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; }
        .muted { color: #6b7280; }
        ul { list-style: none; padding: 0; }
        li { margin: 8px 0; padding-left: 20px; position: relative; }
        li:before { content: "✓"; color: #10b981; font-weight: bold; position: absolute; left: 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1 style="color: #1f2937; margin: 0;">AI Career Analysis Report</h1>
            <p class="muted" style="margin: 10px 0;">Generated on {{.GeneratedOn}}</p>
        </div>

        <div class="section">
            <h2>🧠 Your Personality Profile</h2>
            <h3>{{.Result.PersonalityProfile.Type}}</h3>
            <p>{{.Result.PersonalityProfile.Description}}</p>
            <h4>Key Strengths:</h4>
            <ul>
                {{- range .Result.PersonalityProfile.Strengths}}
                <li>{{.}}</li>
                {{- end}}
            </ul>
            <h4>Work Style:</h4>
            <p>{{.Result.PersonalityProfile.WorkStyle}}</p>
        </div>

        <div class="section">
            <h2>📊 Skills Assessment</h2>
            <h3>Technical Skills</h3>
            {{- range .Result.SkillsAssessment.Technical}}
            <div class="skill">
                <div class="skill-head"><span>{{.Skill}}</span><span style="font-weight: bold; color: #6366f1;">{{.Level}}%</span></div>
                <div class="skill-bar"><div class="skill-fill" style="width: {{.Level}}%;"></div></div>
                <small class="muted">{{.Growth}}</small>
            </div>
            {{- end}}
            <h3>Soft Skills</h3>
            {{- range .Result.SkillsAssessment.Soft}}
            <div class="skill">
                <div class="skill-head"><span>{{.Skill}}</span><span style="font-weight: bold; color: #3b82f6;">{{.Level}}%</span></div>
                <div class="skill-bar"><div class="skill-fill soft" style="width: {{.Level}}%;"></div></div>
                <small class="muted">{{.Growth}}</small>
            </div>
            {{- end}}
        </div>

        <div class="section">
            <h2>🎯 Top Career Recommendations</h2>
            {{- range .Result.CareerRecommendations}}
            <div class="recommendation">
                <div class="recommendation-head">
                    <h3 style="margin: 0;">{{.Title}}</h3>
                    <span class="match-score">{{.Match}}%</span>
                </div>
                <p>{{.Reasoning}}</p>
                <div class="grid">
                    <div><strong>Growth Path:</strong><br><small>{{.GrowthPath}}</small></div>
                    <div><strong>Time to Transition:</strong><br><small>{{.TimeToTransition}}</small></div>
                </div>
            </div>
            {{- end}}
        </div>

        <div class="section">
            <h2>🚀 Your Action Plan</h2>
            <div class="plan">
                <div>
                    <h3 style="color: #6366f1;">Immediate (Next 30 days)</h3>
                    <ul>
                        {{- range .Result.ActionPlan.Immediate}}
                        <li>{{.}}</li>
                        {{- end}}
                    </ul>
                </div>
                <div>
                    <h3 style="color: #3b82f6;">Short-term (3-6 months)</h3>
                    <ul>
                        {{- range .Result.ActionPlan.ShortTerm}}
                        <li>{{.}}</li>
                        {{- end}}
                    </ul>
                </div>
                <div>
                    <h3 style="color: #10b981;">Long-term (6+ months)</h3>
                    <ul>
                        {{- range .Result.ActionPlan.LongTerm}}
                        <li>{{.}}</li>
                        {{- end}}
                    </ul>
                </div>
            </div>
        </div>

        <div class="section">
            <h2>🤝 Mentoring Needs</h2>
            <ul>
                {{- range .Result.MentoringNeeds}}
                <li>{{.}}</li>
                {{- end}}
            </ul>
        </div>

        <div style="text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
            <p class="muted" style="font-size: 14px;">
                Generated by AI Mentorship Network<br>
                This report is personalized based on your assessment responses.
            </p>
        </div>
    </div>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportData struct {
	GeneratedOn string
	Result      *models.AnalysisResult
}

// FormatReport renders the analysis as a standalone HTML document with no
// external references. The output depends only on its arguments.
func FormatReport(result *models.AnalysisResult, generatedOn time.Time) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, reportData{
		GeneratedOn: generatedOn.Format("January 2, 2006"),
		Result:      result,
	}); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// ReportFilename is the download name of an exported report.
func ReportFilename(date time.Time) string {
	return fmt.Sprintf("AI_Career_Analysis_Report_%s.html", date.Format("2006-01-02"))
}

// FormatMarkdown renders a terminal-friendly summary of the analysis.
func FormatMarkdown(result *models.AnalysisResult) string {
	var b strings.Builder

	p := result.PersonalityProfile
	fmt.Fprintf(&b, "# Your Career Analysis\n\n## %s\n\n%s\n\n", p.Type, p.Description)
	writeList(&b, "### Key Strengths", p.Strengths)
	fmt.Fprintf(&b, "**Work style:** %s\n\n", p.WorkStyle)

	b.WriteString("## Skills Assessment\n\n| Skill | Level | Growth |\n|---|---|---|\n")
	for _, s := range result.SkillsAssessment.Technical {
		fmt.Fprintf(&b, "| %s | %d%% | %s |\n", s.Skill, s.Level, s.Growth)
	}
	for _, s := range result.SkillsAssessment.Soft {
		fmt.Fprintf(&b, "| %s (soft) | %d%% | %s |\n", s.Skill, s.Level, s.Growth)
	}
	b.WriteString("\n## Top Career Recommendations\n\n")
	for _, r := range result.CareerRecommendations {
		fmt.Fprintf(&b, "### %s (%d%% match)\n\n%s\n\n- **Growth path:** %s\n- **Time to transition:** %s\n\n",
			r.Title, r.Match, r.Reasoning, r.GrowthPath, r.TimeToTransition)
	}

	b.WriteString("## Your Action Plan\n\n")
	writeList(&b, "### Immediate (Next 30 days)", result.ActionPlan.Immediate)
	writeList(&b, "### Short-term (3-6 months)", result.ActionPlan.ShortTerm)
	writeList(&b, "### Long-term (6+ months)", result.ActionPlan.LongTerm)
	writeList(&b, "## Mentoring Needs", result.MentoringNeeds)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
