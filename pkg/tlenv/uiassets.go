package tlenv

// the web UI installed into the environment's ui/ directory. kept inside the
// binary so `init` and the launcher's auto-repair work offline.
type UIAsset struct {
	Path    string
	Content string
}

var builtinUIAssets = []UIAsset{
	{Path: "ui/layout.html", Content: layoutHTML},
	{Path: "ui/home.html", Content: homeHTML},
	{Path: "ui/data.html", Content: dataHTML},
	{Path: "ui/optimize.html", Content: optimizeHTML},
	{Path: "ui/results.html", Content: resultsHTML},
	{Path: "ui/about.html", Content: aboutHTML},
	{Path: "ui/static/style.css", Content: styleCSS},
}

const layoutHTML = `<!DOCTYPE html>
<html lang="kk">
<head>
<meta charset="utf-8">
<title>{{template "title" .}} | Оқу жүктемесін бөлу жүйесі</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header>
<h1>Оқу жүктемесін бөлу жүйесі</h1>
<nav>
<a href="/">Басты бет</a>
<a href="/data">Деректер</a>
<a href="/optimize">Оңтайландыру</a>
<a href="/results">Нәтижелер</a>
<a href="/about">Жүйе туралы</a>
</nav>
</header>
<main>
{{template "content" .}}
</main>
<footer>Х. Досмұхамедов атындағы Атырау университеті</footer>
</body>
</html>
`

const homeHTML = `{{define "title"}}Басты бет{{end}}
{{define "content"}}
<h2>Кафедраның оқу жүктемесін бөлу</h2>
<p>Оқытушылар арасында оқу жүктемесін әділ бөлуге арналған жүйе.</p>
<ul>
<li>Сақталған есептер: {{.InstanceCount}}</li>
<li>Оңтайландыру нәтижелері: {{.ResultCount}}</li>
</ul>
<p><a href="/data">Деректер бетінен</a> бастаңыз: синтетикалық есеп генерациялаңыз немесе бар есепті таңдаңыз.</p>
{{end}}
`

const dataHTML = `{{define "title"}}Деректер{{end}}
{{define "content"}}
<h2>Есеп даналары</h2>
<form id="generate">
<label>Көлемі:
<select name="size">
<option value="small">Кіші (15 оқытушы)</option>
<option value="medium">Орташа (35 оқытушы)</option>
<option value="large">Үлкен (70 оқытушы)</option>
</select>
</label>
<label>Seed: <input type="number" name="seed" value="42"></label>
<button type="submit">Генерациялау</button>
</form>
<table>
<tr><th>ID</th><th>Атауы</th><th>Оқытушылар</th><th>Белсенділіктер</th><th>Сұраныс (сағ)</th><th>Сыйымдылық (сағ)</th><th></th></tr>
{{range .Instances}}
<tr>
<td>{{.ID}}</td>
<td>{{.Name}}</td>
<td>{{.FacultyCount}}</td>
<td>{{.ActivityCount}}</td>
<td>{{printf "%.1f" .TotalDemand}}</td>
<td>{{printf "%.1f" .TotalCapacity}}</td>
<td><button class="delete" data-id="{{.ID}}">Өшіру</button></td>
</tr>
{{end}}
</table>
<script>
document.getElementById('generate').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var form = ev.target;
  fetch('/api/instances/generate', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({size: form.size.value, seed: parseInt(form.seed.value, 10)})
  }).then(function (res) {
    if (!res.ok) { res.text().then(alert); return; }
    location.reload();
  });
});
Array.prototype.forEach.call(document.querySelectorAll('button.delete'), function (btn) {
  btn.addEventListener('click', function () {
    fetch('/api/instances/' + encodeURIComponent(btn.dataset.id), {method: 'DELETE'}).then(function () {
      location.reload();
    });
  });
});
</script>
{{end}}
`

const optimizeHTML = `{{define "title"}}Оңтайландыру{{end}}
{{define "content"}}
<h2>Оңтайландыру</h2>
<form id="solve">
<label>Есеп:
<select name="instance">
{{range .InstanceIDs}}<option value="{{.}}">{{.}}</option>{{end}}
</select>
</label>
<label>Әдіс:
<select name="solver">
{{range .Solvers}}<option value="{{.Key}}">{{.Name}}</option>{{end}}
</select>
</label>
<label>Уақыт шегі (секунд): <input type="number" name="timelimit" value="300"></label>
<button type="submit">Шешу</button>
</form>
<p id="status"></p>
<script>
document.getElementById('solve').addEventListener('submit', function (ev) {
  ev.preventDefault();
  var form = ev.target;
  document.getElementById('status').textContent = 'Есептелуде...';
  fetch('/api/solve', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      instance_id: form.instance.value,
      solver: form.solver.value,
      time_limit_seconds: parseInt(form.timelimit.value, 10)
    })
  }).then(function (res) {
    if (!res.ok) { res.text().then(alert); document.getElementById('status').textContent = ''; return; }
    location.href = '/results';
  });
});
</script>
{{end}}
`

const resultsHTML = `{{define "title"}}Нәтижелер{{end}}
{{define "content"}}
<h2>Оңтайландыру нәтижелері</h2>
<table>
<tr><th>ID</th><th>Әдіс</th><th>Статус</th><th>Мақсат функциясы</th><th>Жалпы ауытқу (сағ)</th><th>Уақыт (с)</th><th></th></tr>
{{range .Results}}
<tr>
<td>{{.ID}}</td>
<td>{{.SolverName}}</td>
<td>{{.Status}}</td>
<td>{{printf "%.2f" .ObjectiveValue}}</td>
<td>{{printf "%.1f" .TotalDeviation}}</td>
<td>{{printf "%.2f" .Seconds}}</td>
<td>
<a href="/api/reports/official?result={{.ID}}">Есеп (xlsx)</a>
<a href="/api/reports/assignments?result={{.ID}}">Тағайындаулар (csv)</a>
<button class="timetable" data-id="{{.ID}}">Кесте құру</button>
</td>
</tr>
{{end}}
</table>
<script>
Array.prototype.forEach.call(document.querySelectorAll('button.timetable'), function (btn) {
  btn.addEventListener('click', function () {
    fetch('/api/timetables', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({result_id: btn.dataset.id})
    }).then(function (res) {
      if (!res.ok) { res.text().then(alert); return; }
      location.href = '/api/timetable?id=' + encodeURIComponent(btn.dataset.id);
    });
  });
});
</script>
{{end}}
`

const aboutHTML = `{{define "title"}}Жүйе туралы{{end}}
{{define "content"}}
<h2>Жүйе туралы</h2>
<p>Кафедраның оқу жүктемесін оқытушылар арасында бөлуді оңтайландыру жүйесі.
Мақсат: әр оқытушының нақты жүктемесін мақсатты жүктемесіне барынша жақындату.</p>
<h3>Оңтайландыру әдістері</h3>
<ul>
<li><strong>Branch and Bound</strong>: дәл әдіс, оңтайлылықты дәлелдейді</li>
<li><strong>Greedy</strong>: жылдам конструктивті эвристика</li>
<li><strong>Genetic Algorithm</strong>: популяциялық метаэвристика</li>
<li><strong>Simulated Annealing</strong>: жергілікті іздеу метаэвристикасы</li>
</ul>
<p>Х. Досмұхамедов атындағы Атырау университеті, Ақпараттық технологиялар кафедрасы.</p>
{{end}}
`

const styleCSS = `body { font-family: sans-serif; margin: 0; color: #222; }
header { background: #1f4e79; color: #fff; padding: 12px 24px; }
header h1 { margin: 0 0 8px 0; font-size: 20px; }
nav a { color: #cfe2f3; margin-right: 16px; text-decoration: none; }
nav a:hover { color: #fff; }
main { padding: 24px; }
footer { padding: 12px 24px; color: #777; font-size: 12px; }
table { border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #eef3f8; }
form { margin: 16px 0; }
label { margin-right: 16px; }
button { cursor: pointer; }
`
