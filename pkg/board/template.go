package board

import "html/template"

type dashboardDriver struct {
	Number  int
	Acronym string
	Color   string
	Active  bool
}

type dashboardData struct {
	Event        string
	Location     string
	WebSocketURL string
	Drivers      []dashboardDriver

	TotalLaps    int
	Anomalies    int
	HasFastest   bool
	FastestTime  string
	FastestBy    string
	FastestColor string
}

var dashboardTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Pit Wall — {{ .Event }}</title>
  <style>
    body { background: #111827; color: #e5e7eb; font-family: sans-serif; margin: 0; padding: 1rem; }
    h1 { font-size: 1.2rem; margin: 0 0 .5rem; }
    .muted { color: #9ca3af; }
    .row { display: flex; flex-wrap: wrap; gap: 1rem; }
    .panel { background: #1f2937; border-radius: .5rem; padding: .75rem; }
    img.chart { display: block; max-width: 100%; background: #fff; border-radius: .25rem; }
    #strategy { cursor: crosshair; }
    .chips button { border: 1px solid #374151; border-radius: 999px; padding: .2rem .6rem;
                    margin: .15rem; background: #111827; color: #9ca3af; cursor: pointer; }
    .chips button.on { color: #e5e7eb; border-color: currentColor; }
    .cards { display: flex; gap: 1rem; margin: .75rem 0; }
    .card { background: #1f2937; border-radius: .5rem; padding: .5rem .9rem; }
    .card .value { font-size: 1.3rem; font-weight: bold; }
    .card.fastest { border-left: 4px solid #{{ .FastestColor }}; }
  </style>
</head>
<body>
  <h1>{{ .Event }} <span class="muted">{{ .Location }}</span></h1>

  <div class="cards">
    {{ if .HasFastest }}
    <div class="card fastest">
      <div class="muted">Fastest lap</div>
      <div class="value">{{ .FastestTime }}</div>
      <div class="muted">{{ .FastestBy }}</div>
    </div>
    {{ end }}
    <div class="card">
      <div class="muted">Total laps</div>
      <div class="value">{{ .TotalLaps }}</div>
    </div>
    <div class="card">
      <div class="muted">Anomalies flagged</div>
      <div class="value">{{ .Anomalies }}</div>
    </div>
  </div>

  <div class="chips">
    {{ range .Drivers }}
    <button data-driver="{{ .Number }}" class="{{ if .Active }}on{{ end }}"
            {{ if .Active }}style="color: #{{ .Color }}"{{ end }}>{{ .Acronym }}</button>
    {{ end }}
  </div>

  <div class="row">
    <div class="panel">
      <img id="strategy" class="chart" src="/charts/strategy.png" alt="strategy">
    </div>
    <div class="panel">
      <img id="comparison" class="chart" src="/charts/comparison.png" alt="comparison">
    </div>
  </div>
  <div class="row" id="drill" hidden>
    <div class="panel"><img id="drill-speed" class="chart" alt="speed"></div>
    <div class="panel"><img id="drill-engine" class="chart" alt="engine"></div>
  </div>

  <script>
    const ws = new WebSocket('{{ .WebSocketURL }}');

    function reload() {
      const bust = '?t=' + Date.now();
      document.getElementById('strategy').src = '/charts/strategy.png' + bust;
      document.getElementById('comparison').src = '/charts/comparison.png' + bust;
      const drill = document.getElementById('drill');
      const speed = document.getElementById('drill-speed');
      const engine = document.getElementById('drill-engine');
      speed.onload = () => { drill.hidden = false; };
      speed.onerror = () => { drill.hidden = true; };
      speed.src = '/charts/drill/speed.png' + bust;
      engine.src = '/charts/drill/engine.png' + bust;
    }

    ws.onmessage = (e) => {
      const msg = JSON.parse(e.data);
      if (msg.event === 'refresh') reload();
    };

    document.getElementById('strategy').addEventListener('click', (e) => {
      const rect = e.target.getBoundingClientRect();
      ws.send(JSON.stringify({
        action: 'click',
        fx: (e.clientX - rect.left) / rect.width,
        fy: (e.clientY - rect.top) / rect.height,
      }));
    });

    document.querySelectorAll('.chips button').forEach((b) => {
      b.addEventListener('click', () => {
        ws.send(JSON.stringify({ action: 'toggle', driver_number: parseInt(b.dataset.driver, 10) }));
      });
    });
  </script>
</body>
</html>
`))
