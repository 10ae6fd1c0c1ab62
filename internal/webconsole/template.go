/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package webconsole

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>KubeQuery Console</title>
    <style>
        :root {
            --bg-primary: #0f172a;
            --bg-secondary: #1e293b;
            --bg-card: #334155;
            --text-primary: #f8fafc;
            --text-secondary: #94a3b8;
            --accent: #3b82f6;
            --border-color: rgba(255, 255, 255, 0.1);
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            height: 100vh;
            display: flex;
            flex-direction: column;
        }
        header {
            padding: 16px 24px;
            background: var(--bg-secondary);
            border-bottom: 1px solid var(--border-color);
            display: flex;
            align-items: center;
            gap: 12px;
        }
        header h1 { font-size: 18px; font-weight: 600; }
        header .subtitle { color: var(--text-secondary); font-size: 13px; }
        #messages {
            flex: 1;
            overflow-y: auto;
            padding: 24px;
            display: flex;
            flex-direction: column;
            gap: 12px;
        }
        .msg {
            max-width: 75%;
            padding: 12px 16px;
            border-radius: 12px;
            white-space: pre-wrap;
            font-size: 14px;
            line-height: 1.5;
        }
        .msg.user { align-self: flex-end; background: var(--accent); }
        .msg.bot { align-self: flex-start; background: var(--bg-card); }
        .msg.error { align-self: flex-start; background: rgba(239, 68, 68, 0.2); }
        #examples {
            padding: 0 24px 8px;
            display: flex;
            flex-wrap: wrap;
            gap: 8px;
        }
        #examples button {
            background: var(--bg-secondary);
            color: var(--text-secondary);
            border: 1px solid var(--border-color);
            border-radius: 16px;
            padding: 6px 12px;
            font-size: 12px;
            cursor: pointer;
        }
        #examples button:hover { color: var(--text-primary); border-color: var(--accent); }
        form {
            display: flex;
            gap: 8px;
            padding: 16px 24px;
            background: var(--bg-secondary);
            border-top: 1px solid var(--border-color);
        }
        form input {
            flex: 1;
            background: var(--bg-primary);
            color: var(--text-primary);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 10px 14px;
            font-size: 14px;
            outline: none;
        }
        form input:focus { border-color: var(--accent); }
        form button {
            background: var(--accent);
            color: white;
            border: none;
            border-radius: 8px;
            padding: 10px 20px;
            font-size: 14px;
            cursor: pointer;
        }
        form button:disabled { opacity: 0.5; cursor: default; }
    </style>
</head>
<body>
    <header>
        <h1>KubeQuery</h1>
        <span class="subtitle">Ask questions about your Kubernetes cluster</span>
    </header>
    <div id="messages"></div>
    <div id="examples"></div>
    <form id="query-form">
        <input id="query-input" type="text" placeholder="e.g. What pods are running in kube-system?" autocomplete="off" maxlength="2000">
        <button id="send-btn" type="submit">Send</button>
    </form>
    <script>
        let sessionId = '';
        const messages = document.getElementById('messages');
        const form = document.getElementById('query-form');
        const input = document.getElementById('query-input');
        const sendBtn = document.getElementById('send-btn');

        function addMessage(text, cls) {
            const div = document.createElement('div');
            div.className = 'msg ' + cls;
            div.textContent = text;
            messages.appendChild(div);
            messages.scrollTop = messages.scrollHeight;
        }

        async function loadExamples() {
            try {
                const resp = await fetch('/api/examples');
                const data = await resp.json();
                const container = document.getElementById('examples');
                for (const example of data.examples) {
                    const btn = document.createElement('button');
                    btn.textContent = example;
                    btn.onclick = () => { input.value = example; input.focus(); };
                    container.appendChild(btn);
                }
            } catch (e) { /* suggestions are optional */ }
        }

        form.addEventListener('submit', async (event) => {
            event.preventDefault();
            const query = input.value.trim();
            if (!query) return;
            addMessage(query, 'user');
            input.value = '';
            sendBtn.disabled = true;
            try {
                const resp = await fetch('/api/query', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ sessionId: sessionId, query: query })
                });
                const data = await resp.json();
                if (!resp.ok) {
                    addMessage(data.error || 'Request failed', 'error');
                } else {
                    sessionId = data.sessionId;
                    addMessage(data.response, 'bot');
                }
            } catch (e) {
                addMessage('Could not reach the server.', 'error');
            } finally {
                sendBtn.disabled = false;
                input.focus();
            }
        });

        loadExamples();
        addMessage('Hi! Ask me anything about the cluster: pods, nodes, namespaces, or services.', 'bot');
    </script>
</body>
</html>
`
