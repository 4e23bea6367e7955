package intelligence

const extractSystemPrompt = `You extract the lesson list from the HTML of an online course page.

Return ONLY a JSON object of this shape, with no commentary:
{"course": "<course title or empty>", "classes": [{"module": "<section name>", "title": "<lesson title>", "duration": "HH:MM:SS"}]}

Rules:
1. One entry per individual lesson, in page order. Never merge lessons and never use section or course totals.
2. Lessons are usually repeated elements (list items, "list-content" or "lesson-item" blocks) holding a title and a time such as "12:30" or "1:15:30".
3. Sections (chapters, modules, accordions) give the "module" value. If the page has no sections, use "Module 1", "Module 2" and so on.
4. Keep titles and module names exactly as written, in the page's language.
5. Durations:
   - three fields (1:15:30) are hours:minutes:seconds;
   - two fields are minutes:seconds unless the first field is above 59 (120:00 is 120 minutes);
   - a single number is minutes;
   - always answer in HH:MM:SS, e.g. 12:30 becomes 00:12:30 and 120:00 becomes 02:00:00;
   - use "00:00:00" when a lesson shows no duration.
6. Do not invent lessons and do not skip any.`

const extractUserPromptPrefix = "Course HTML:\n\n"
