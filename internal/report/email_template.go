package report

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Stack Tracker Gold – {{.Date}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #3f3418 0%, #37393b 100%);
      color: #ffffff;
    }

    .headline {
      font-size: 22px;
      font-weight: 700;
      letter-spacing: 0.03em;
      margin-bottom: 4px;
    }

    .subhead {
      font-size: 14px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .brief-list {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    .brief-list li {
      margin-bottom: 10px;
      padding-left: 4px;
    }

    .score-tag {
      display: inline-block;
      padding: 2px 8px;
      font-size: 11px;
      font-weight: 600;
      background: #fef3c7;
      color: #92400e;
      border-radius: 3px;
      margin-right: 4px;
    }

    .category-tag {
      display: inline-block;
      padding: 2px 8px;
      font-size: 11px;
      font-weight: 500;
      background: #e0f2fe;
      color: #0369a1;
      border-radius: 3px;
      margin-left: 4px;
    }

    .brief-summary {
      display: block;
      margin-top: 2px;
      font-size: 13px;
      color: #374151;
    }

    .meta-grid {
      display: table;
      width: 100%;
      font-size: 14px;
    }

    .meta-row {
      display: table-row;
    }

    .meta-label {
      display: table-cell;
      padding: 6px 16px 6px 0;
      color: #6b7280;
      font-weight: 500;
      white-space: nowrap;
      width: 110px;
      text-transform: capitalize;
    }

    .meta-value {
      display: table-cell;
      padding: 6px 0;
      color: #111827;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="headline">Stack Tracker Gold</div>
      <div class="subhead">Daily intelligence for {{.Date}} — {{.BriefsInserted}} briefs, {{.VaultInserted}} vault rows</div>
    </div>

    {{if .Briefs}}
    <div class="section">
      <div class="section-title">Intelligence Briefs</div>
      <ul class="brief-list">
        {{range .Briefs}}
        <li>
          <span class="score-tag">{{.RelevanceScore}}</span>
          {{if .SourceURL}}<a href="{{.SourceURL}}" target="_blank" rel="noopener">{{.Title}}</a>{{else}}{{.Title}}{{end}}
          <span class="category-tag">{{.Category}}</span>
          {{if .Summary}}<span class="brief-summary">{{.Summary}}</span>{{end}}
        </li>
        {{end}}
      </ul>
    </div>
    {{end}}

    <div class="section">
      <div class="section-title">COMEX Vault Data</div>
      <div class="meta-grid">
        {{$status := .VaultStatus}}
        {{range .Metals}}
        <div class="meta-row">
          <div class="meta-label">{{.}}</div>
          <div class="meta-value">{{index $status .}}</div>
        </div>
        {{end}}
      </div>
    </div>

    <div class="section">
      <div class="section-title">Run Stats</div>
      <div class="meta-grid">
        <div class="meta-row">
          <div class="meta-label">API calls</div>
          <div class="meta-value">{{.CallsUsed}}/{{.CallBudget}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Est. cost</div>
          <div class="meta-value">~${{printf "%.2f" .EstimatedCost}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Runtime</div>
          <div class="meta-value">{{printf "%.1fs" .Elapsed.Seconds}}</div>
        </div>
      </div>
    </div>

    <div class="footer">
      Generated by the Stack Tracker Gold intelligence generator
    </div>
  </div>
</body>
</html>`
