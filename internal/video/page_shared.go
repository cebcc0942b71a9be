package video

// siteCSS is the base styling shared by the public and admin pages.
// Page templates append their own rules after it. The accent color is
// set via --accent so a page can override it without touching the
// shared rules.
const siteCSS = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        :root { --accent: #e11d48; --accent-hover: #be123c; }
        body {
            background: #0f172a;
            color: #e2e8f0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
            display: flex;
            flex-direction: column;
        }
        a { color: inherit; }
        .nav {
            display: flex;
            align-items: center;
            justify-content: space-between;
            padding: 0.875rem 1.5rem;
            background: #1e293b;
            border-bottom: 1px solid #334155;
        }
        .brand {
            font-size: 1.25rem;
            font-weight: 700;
            text-decoration: none;
            letter-spacing: -0.02em;
        }
        .brand span { color: var(--accent); }
        .nav-links { display: flex; gap: 1.25rem; }
        .nav-links a {
            color: #94a3b8;
            text-decoration: none;
            font-size: 0.875rem;
        }
        .nav-links a:hover { color: #e2e8f0; }
        .container {
            width: 100%;
            max-width: 1100px;
            margin: 0 auto;
            padding: 2rem 1rem;
            flex: 1;
        }
        .btn {
            display: inline-block;
            padding: 0.5rem 1rem;
            border: none;
            border-radius: 6px;
            font-size: 0.875rem;
            font-weight: 600;
            cursor: pointer;
            text-decoration: none;
            text-align: center;
        }
        .btn-primary { background: var(--accent); color: #fff; }
        .btn-primary:hover { background: var(--accent-hover); }
        .btn-secondary { background: #334155; color: #e2e8f0; }
        .btn-secondary:hover { background: #475569; }
        .btn-danger { background: #7f1d1d; color: #fecaca; }
        .btn-danger:hover { background: #991b1b; }
        .btn:disabled { opacity: 0.5; cursor: not-allowed; }
        .video-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(280px, 1fr));
            gap: 1.25rem;
        }
        .video-card {
            background: #1e293b;
            border: 1px solid #334155;
            border-radius: 10px;
            overflow: hidden;
            text-decoration: none;
            display: block;
            transition: transform 0.15s, border-color 0.15s;
        }
        .video-card:hover { transform: translateY(-2px); border-color: var(--accent); }
        .card-banner {
            width: 100%;
            aspect-ratio: 16 / 9;
            object-fit: cover;
            display: block;
            background: #0f172a;
        }
        .card-body { padding: 0.875rem 1rem 1rem; }
        .card-title {
            font-size: 1rem;
            font-weight: 600;
            margin-bottom: 0.375rem;
            overflow: hidden;
            display: -webkit-box;
            -webkit-line-clamp: 2;
            -webkit-box-orient: vertical;
        }
        .card-date { color: #94a3b8; font-size: 0.8125rem; }
        .hashtags { display: flex; flex-wrap: wrap; gap: 0.375rem; margin-top: 0.625rem; }
        .hashtag {
            background: #334155;
            color: #cbd5e1;
            padding: 0.125rem 0.5rem;
            border-radius: 999px;
            font-size: 0.75rem;
            white-space: nowrap;
        }
        .form-group { margin-bottom: 1rem; }
        .form-group label {
            display: block;
            font-size: 0.8125rem;
            color: #94a3b8;
            margin-bottom: 0.375rem;
        }
        .form-group input[type="text"],
        .form-group input[type="url"],
        .form-group input[type="password"],
        .form-group textarea {
            width: 100%;
            padding: 0.625rem 0.75rem;
            border-radius: 6px;
            border: 1px solid #334155;
            background: #0f172a;
            color: #e2e8f0;
            font-size: 0.875rem;
            font-family: inherit;
            outline: none;
        }
        .form-group input:focus, .form-group textarea:focus { border-color: var(--accent); }
        .form-group input[type="file"] { color: #94a3b8; font-size: 0.8125rem; }
        .form-hint { color: #64748b; font-size: 0.75rem; margin-top: 0.25rem; }
        .form-error {
            background: #7f1d1d;
            color: #fecaca;
            border: 1px solid #991b1b;
            border-radius: 6px;
            padding: 0.625rem 0.875rem;
            font-size: 0.875rem;
            margin-bottom: 1rem;
        }
        .empty-state {
            text-align: center;
            color: #64748b;
            padding: 4rem 1rem;
        }
        .empty-state h2 { color: #94a3b8; font-size: 1.125rem; margin-bottom: 0.5rem; }
        .footer {
            text-align: center;
            padding: 1.5rem 1rem;
            color: #64748b;
            font-size: 0.75rem;
            border-top: 1px solid #1e293b;
        }
        .footer a { color: var(--accent); text-decoration: none; }
        .footer a:hover { text-decoration: underline; }
`

const navHTML = `
    <nav class="nav">
        <a class="brand" href="/">Stream<span>Hub</span></a>
        <div class="nav-links">
            <a href="/">Home</a>
            <a href="/admin">Admin</a>
        </div>
    </nav>
`

const footerHTML = `
    <div class="footer">StreamHub — your video streaming platform</div>
`

// shareJS copies the current watch link using whatever the browser
// offers, falling back from the Web Share API to the async clipboard
// to a manual prompt.
const shareJS = `
        (function() {
            var btn = document.getElementById('share-btn');
            if (!btn) return;
            btn.addEventListener('click', function() {
                var url = btn.getAttribute('data-url');
                var title = btn.getAttribute('data-title');
                if (navigator.share) {
                    navigator.share({title: title, url: url}).catch(function() {});
                    return;
                }
                if (navigator.clipboard && navigator.clipboard.writeText) {
                    navigator.clipboard.writeText(url).then(function() {
                        var label = btn.textContent;
                        btn.textContent = 'Link copied!';
                        setTimeout(function() { btn.textContent = label; }, 2000);
                    }).catch(function() {
                        window.prompt('Copy this link:', url);
                    });
                    return;
                }
                window.prompt('Copy this link:', url);
            });
        })();
`

// gateCSS styles the password prompt shown in place of a protected
// video's player.
const gateCSS = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #0f172a;
            color: #e2e8f0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .gate-container { text-align: center; padding: 2rem; max-width: 400px; width: 100%; }
        .gate-container h1 { font-size: 1.5rem; margin-bottom: 0.75rem; }
        .gate-container p { color: #94a3b8; margin-bottom: 1.5rem; }
        .gate-error { color: #ef4444; font-size: 0.875rem; margin-bottom: 1rem; display: none; }
        .gate-error.visible { display: block; }
        .gate-container input[type="password"] {
            width: 100%;
            padding: 0.75rem 1rem;
            border-radius: 8px;
            border: 1px solid #334155;
            background: #1e293b;
            color: #fff;
            font-size: 1rem;
            margin-bottom: 1rem;
            outline: none;
        }
        .gate-container input[type="password"]:focus { border-color: #e11d48; }
        .gate-container button {
            width: 100%;
            background: #e11d48;
            color: #fff;
            padding: 0.75rem 1.5rem;
            border: none;
            border-radius: 8px;
            font-size: 1rem;
            font-weight: 600;
            cursor: pointer;
        }
        .gate-container button:hover { opacity: 0.9; }
        .gate-container button:disabled { opacity: 0.5; cursor: not-allowed; }`

// gateHTML is the password prompt shared by the watch and embed pages.
// Submitting posts to the unlock endpoint and reloads on success so the
// page comes back with a fresh access cookie.
const gateHTML = `
    <div class="gate-container">
        <h1>{{.Title}}</h1>
        <p>This video is password protected</p>
        <p class="gate-error" id="error-msg"></p>
        <form id="password-form">
            <input type="password" id="password-input" placeholder="Enter password" required maxlength="72" autofocus>
            <button type="submit" id="submit-btn">Watch Video</button>
        </form>
    </div>
    <script nonce="{{.Nonce}}">
        document.getElementById('password-form').addEventListener('submit', function(e) {
            e.preventDefault();
            var btn = document.getElementById('submit-btn');
            var errEl = document.getElementById('error-msg');
            var pw = document.getElementById('password-input').value;
            btn.disabled = true;
            errEl.classList.remove('visible');
            fetch('/watch/{{.VideoID}}/unlock', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({password: pw})
            }).then(function(r) {
                if (r.ok) { window.location.reload(); }
                else { return r.json().then(function(d) { errEl.textContent = d.error || 'Incorrect password'; errEl.classList.add('visible'); btn.disabled = false; }); }
            }).catch(function() {
                errEl.textContent = 'Something went wrong'; errEl.classList.add('visible'); btn.disabled = false;
            });
        });
    </script>`
