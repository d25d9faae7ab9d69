package safety

// CrisisReply is the scripted response for crisis-flagged messages. It is
// returned verbatim and never passes through the language model.
const CrisisReply = `I'm really concerned about what you're sharing. Your life has value, and there are people who want to help you.

Please reach out to someone you trust right now - a friend, family member, or a mental health professional.

If you need immediate support, please contact:

🇮🇳 India Helpline: +91-9152987821
🌍 Global Helplines: https://findahelpline.com

You don't have to go through this alone. There is help available, and things can get better.`
