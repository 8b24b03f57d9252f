package uitemplates

var baseText = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{block "title" .}}PillPal{{end}} - PillPal</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0-alpha1/dist/css/bootstrap.min.css" rel="stylesheet" integrity="sha384-GLhlTQ8iRABdZLl6O3oVMWSktQOp6b7In1Zl3/Jr59b6EGGoI1aFkw7cmDA6j6gD" crossorigin="anonymous">
    {{block "head" .}}{{end}}
  </head>
  <body>
    <div class="container" style="max-width: 28rem">
      <nav class="navbar bg-body-tertiary">
        <div class="container-fluid">
          <a class="navbar-brand" href="/">PillPal</a>
        </div>
      </nav>

      <main class="mt-3">
        {{block "content" .}}{{end}}
      </main>
    </div>
  </body>
</html>
`
